package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/ics"
	"noteapp-api/internal/model"
	"noteapp-api/internal/patch"
	"noteapp-api/internal/schedule"
	"noteapp-api/internal/store"
)

type eventResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	LinkedTaskID *int64    `json:"linked_task_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newEventResponse(e *model.CalendarEvent) eventResponse {
	return eventResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		LinkedTaskID: e.LinkedTaskID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func dateFilters(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("start_date"); v != "" {
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return nil, nil, apperr.Validation("start_date must be RFC 3339")
		}
		from = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			return nil, nil, apperr.Validation("end_date must be RFC 3339")
		}
		to = &t
	}
	return from, to, nil
}

func (h *Handler) handleListEvents(c *gin.Context) {
	skip, limit, err := pagination(c, 50)
	if err != nil {
		h.fail(c, err)
		return
	}
	from, to, err := dateFilters(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	events, err := h.store.ListEvents(c, userID(c), from, to, skip, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = newEventResponse(&events[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) handleGetEvent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	e, err := h.store.GetEvent(c, userID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(e))
}

type createEventRequest struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	LinkedTaskID *int64     `json:"linked_task_id"`
}

func (h *Handler) handleCreateEvent(c *gin.Context) {
	uid := userID(c)

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := validateTitle(req.Title); err != nil {
		h.fail(c, err)
		return
	}
	if err := validateOptionalText(req.Description, maxDescriptionLen, "description"); err != nil {
		h.fail(c, err)
		return
	}
	if req.StartTime == nil || req.EndTime == nil {
		h.fail(c, apperr.Validation("start_time and end_time are required"))
		return
	}
	if err := schedule.ValidateRange(*req.StartTime, *req.EndTime); err != nil {
		h.fail(c, err)
		return
	}

	var link *int64
	if req.LinkedTaskID != nil && *req.LinkedTaskID != schedule.Unlink {
		if err := h.engine.ValidateLink(c, uid, *req.LinkedTaskID); err != nil {
			h.fail(c, err)
			return
		}
		link = req.LinkedTaskID
	}

	if err := h.engine.CheckConflict(c, uid, *req.StartTime, *req.EndTime, 0); err != nil {
		h.fail(c, err)
		return
	}

	e := &model.CalendarEvent{
		UserID:       uid,
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    *req.StartTime,
		EndTime:      *req.EndTime,
		LinkedTaskID: link,
	}
	if err := h.store.CreateEvent(c, e); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info().Int64("event_id", e.ID).Msg("created event")
	c.JSON(http.StatusCreated, newEventResponse(e))
}

type updateEventRequest struct {
	Title        patch.Field[string]    `json:"title"`
	Description  patch.Field[string]    `json:"description"`
	StartTime    patch.Field[time.Time] `json:"start_time"`
	EndTime      patch.Field[time.Time] `json:"end_time"`
	LinkedTaskID patch.Field[int64]     `json:"linked_task_id"`
}

func (r *updateEventRequest) empty() bool {
	return !r.Title.Present() && !r.Description.Present() &&
		!r.StartTime.Present() && !r.EndTime.Present() &&
		!r.LinkedTaskID.Present()
}

// Update re-validates the merged time range but, unlike create, does
// not look for overlaps unless strict conflict checking is enabled.
func (h *Handler) handleUpdateEvent(c *gin.Context) {
	uid := userID(c)

	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	e, err := h.store.GetEvent(c, uid, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if req.empty() {
		c.JSON(http.StatusOK, newEventResponse(e))
		return
	}

	if req.Title.Present() {
		title, ok := req.Title.Get()
		if !ok {
			h.fail(c, apperr.Validation("title cannot be null"))
			return
		}
		if err := validateTitle(title); err != nil {
			h.fail(c, err)
			return
		}
		e.Title = title
	}
	if req.Description.Present() {
		if v, ok := req.Description.Get(); ok {
			if err := validateOptionalText(&v, maxDescriptionLen, "description"); err != nil {
				h.fail(c, err)
				return
			}
		}
		req.Description.ApplyPtr(&e.Description)
	}
	if req.StartTime.Present() {
		v, ok := req.StartTime.Get()
		if !ok {
			h.fail(c, apperr.Validation("start_time cannot be null"))
			return
		}
		e.StartTime = v
	}
	if req.EndTime.Present() {
		v, ok := req.EndTime.Get()
		if !ok {
			h.fail(c, apperr.Validation("end_time cannot be null"))
			return
		}
		e.EndTime = v
	}
	if req.LinkedTaskID.Present() {
		// null and the zero sentinel both mean unlink
		if v, ok := req.LinkedTaskID.Get(); ok && v != schedule.Unlink {
			if err := h.engine.ValidateLink(c, uid, v); err != nil {
				h.fail(c, err)
				return
			}
			e.LinkedTaskID = &v
		} else {
			e.LinkedTaskID = nil
		}
	}

	// the merged range must still be well formed even when only one
	// endpoint moved
	if err := schedule.ValidateRange(e.StartTime, e.EndTime); err != nil {
		h.fail(c, err)
		return
	}

	if h.cfg.StrictConflictCheck {
		if err := h.engine.CheckConflict(c, uid, e.StartTime, e.EndTime, e.ID); err != nil {
			h.fail(c, err)
			return
		}
	}

	if err := h.store.UpdateEvent(c, e); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEventResponse(e))
}

func (h *Handler) handleDeleteEvent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.DeleteEvent(c, userID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleExportEvents(c *gin.Context) {
	from, to, err := dateFilters(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	events, err := h.store.ListEvents(c, userID(c), from, to, 0, store.MaxLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	doc, err := ics.Encode(events)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(doc))
}
