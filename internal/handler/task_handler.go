package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
	"noteapp-api/internal/patch"
)

type taskResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (h *Handler) handleListTasks(c *gin.Context) {
	skip, limit, err := pagination(c, 10)
	if err != nil {
		h.fail(c, err)
		return
	}

	var status model.TaskStatus
	if v := c.Query("status"); v != "" {
		status, err = model.ParseTaskStatus(v)
		if err != nil {
			h.fail(c, apperr.InvalidStatus(err.Error()))
			return
		}
	}

	tasks, err := h.store.ListTasks(c, userID(c), status, skip, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]taskResponse, len(tasks))
	for i := range tasks {
		out[i] = newTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) handleGetTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	t, err := h.store.GetTask(c, userID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
}

func (h *Handler) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
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

	status := model.StatusTodo
	if req.Status != nil {
		var err error
		status, err = model.ParseTaskStatus(*req.Status)
		if err != nil {
			h.fail(c, apperr.InvalidStatus(err.Error()))
			return
		}
	}

	t := &model.Task{
		UserID:      userID(c),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
	}
	if err := h.store.CreateTask(c, t); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info().Int64("task_id", t.ID).Msg("created task")
	c.JSON(http.StatusCreated, newTaskResponse(t))
}

type updateTaskRequest struct {
	Title       patch.Field[string]    `json:"title"`
	Description patch.Field[string]    `json:"description"`
	DueDate     patch.Field[time.Time] `json:"due_date"`
	Status      patch.Field[string]    `json:"status"`
}

func (r *updateTaskRequest) empty() bool {
	return !r.Title.Present() && !r.Description.Present() &&
		!r.DueDate.Present() && !r.Status.Present()
}

func (h *Handler) handleUpdateTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	t, err := h.store.GetTask(c, userID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	if req.empty() {
		c.JSON(http.StatusOK, newTaskResponse(t))
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
		t.Title = title
	}
	if req.Description.Present() {
		if v, ok := req.Description.Get(); ok {
			if err := validateOptionalText(&v, maxDescriptionLen, "description"); err != nil {
				h.fail(c, err)
				return
			}
		}
		req.Description.ApplyPtr(&t.Description)
	}
	req.DueDate.ApplyPtr(&t.DueDate)
	if req.Status.Present() {
		raw, ok := req.Status.Get()
		if !ok {
			h.fail(c, apperr.InvalidStatus("status cannot be null"))
			return
		}
		status, err := model.ParseTaskStatus(raw)
		if err != nil {
			h.fail(c, apperr.InvalidStatus(err.Error()))
			return
		}
		t.Status = status
	}

	if err := h.store.UpdateTask(c, t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

// Deleting a task never touches the events that point at it beyond the
// link itself: the schema clears linked_task_id (SET NULL).
func (h *Handler) handleDeleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.DeleteTask(c, userID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
