// Package schedule guards the calendar-event invariants that go beyond
// plain owner-scoped CRUD: time-range well-formedness, task-link
// integrity, and overlap detection.
package schedule

import (
	"context"
	"errors"
	"time"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
)

// Unlink is the linked_task_id sentinel that drops an existing link on
// update, as opposed to omitting the field (no change).
const Unlink = 0

// Store is the slice of the repository the engine needs.
type Store interface {
	GetTask(ctx context.Context, userID, id int64) (*model.Task, error)
	FirstOverlap(ctx context.Context, userID int64, start, end time.Time, excludeID int64) (*model.CalendarEvent, error)
}

type Engine struct {
	store Store
}

func New(st Store) *Engine {
	return &Engine{store: st}
}

// ValidateRange applies to the fully merged event, not just the fields
// a partial update supplied.
func ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return apperr.InvalidRange("end_time must be after start_time")
	}
	return nil
}

// ValidateLink checks that taskID names a task owned by userID. The
// Unlink sentinel passes: clearing a link needs no lookup.
func (e *Engine) ValidateLink(ctx context.Context, userID, taskID int64) error {
	if taskID == Unlink {
		return nil
	}
	if _, err := e.store.GetTask(ctx, userID, taskID); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.KindNotFound {
			return apperr.InvalidLink("Linked task not found or not owned by user")
		}
		return err
	}
	return nil
}

// CheckConflict fails when any of the user's events overlaps
// [start, end) as a half-open interval; back-to-back events where one
// ends exactly when the other starts do not conflict. The earliest
// conflicting event's title is reported. excludeID > 0 skips that
// event, for re-checks against the event's own stored range.
func (e *Engine) CheckConflict(ctx context.Context, userID int64, start, end time.Time, excludeID int64) error {
	c, err := e.store.FirstOverlap(ctx, userID, start, end, excludeID)
	if err != nil {
		return err
	}
	if c != nil {
		return apperr.Conflict("Event conflicts with existing event: " + c.Title)
	}
	return nil
}
