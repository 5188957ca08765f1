package handler

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
	"noteapp-api/internal/patch"
)

type noteResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newNoteResponse(n *model.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (h *Handler) handleListNotes(c *gin.Context) {
	skip, limit, err := pagination(c, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	search := c.Query("search")
	if utf8.RuneCountInString(search) > maxSearchLen {
		h.fail(c, apperr.Validation("search is too long"))
		return
	}

	notes, err := h.store.ListNotes(c, userID(c), search, skip, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]noteResponse, len(notes))
	for i := range notes {
		out[i] = newNoteResponse(&notes[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) handleGetNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	n, err := h.store.GetNote(c, userID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newNoteResponse(n))
}

type createNoteRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) handleCreateNote(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if err := validateTitle(req.Title); err != nil {
		h.fail(c, err)
		return
	}
	if err := validateOptionalText(req.Content, maxContentLen, "content"); err != nil {
		h.fail(c, err)
		return
	}

	n := &model.Note{UserID: userID(c), Title: req.Title, Content: req.Content}
	if err := h.store.CreateNote(c, n); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info().Int64("note_id", n.ID).Msg("created note")
	c.JSON(http.StatusCreated, newNoteResponse(n))
}

type updateNoteRequest struct {
	Title   patch.Field[string] `json:"title"`
	Content patch.Field[string] `json:"content"`
}

func (h *Handler) handleUpdateNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}

	n, err := h.store.GetNote(c, userID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	// empty payload is a no-op: return the note untouched
	if !req.Title.Present() && !req.Content.Present() {
		c.JSON(http.StatusOK, newNoteResponse(n))
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
		n.Title = title
	}
	if req.Content.Present() {
		if v, ok := req.Content.Get(); ok {
			if err := validateOptionalText(&v, maxContentLen, "content"); err != nil {
				h.fail(c, err)
				return
			}
		}
		req.Content.ApplyPtr(&n.Content)
	}

	if err := h.store.UpdateNote(c, n); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newNoteResponse(n))
}

func (h *Handler) handleDeleteNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.DeleteNote(c, userID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
