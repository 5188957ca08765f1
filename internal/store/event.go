package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
)

const eventColumns = `id, user_id, title, description, start_time, end_time, linked_task_id, created_at, updated_at`

func scanEvent(row pgx.Row, e *model.CalendarEvent) error {
	return row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description,
		&e.StartTime, &e.EndTime, &e.LinkedTaskID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) CreateEvent(ctx context.Context, e *model.CalendarEvent) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO calendar_events (user_id, title, description, start_time, end_time, linked_task_id)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, created_at, updated_at`,
		e.UserID, e.Title, e.Description, e.StartTime, e.EndTime, e.LinkedTaskID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) GetEvent(ctx context.Context, userID, id int64) (*model.CalendarEvent, error) {
	e := &model.CalendarEvent{}
	err := scanEvent(s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM calendar_events
		 WHERE id = $1 AND user_id = $2`, id, userID), e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Calendar event")
		}
		return nil, err
	}
	return e, nil
}

// ListEvents returns the caller's events ordered by start time. The
// optional bounds keep the original semantics: from filters on
// start_time, to filters on end_time.
func (s *Store) ListEvents(ctx context.Context, userID int64, from, to *time.Time, skip, limit int) ([]model.CalendarEvent, error) {
	q := `SELECT ` + eventColumns + ` FROM calendar_events WHERE user_id = $1`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		q += ` AND start_time >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		q += ` AND end_time <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit, skip)
	q += ` ORDER BY start_time ASC, id ASC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CalendarEvent{}
	for rows.Next() {
		var e model.CalendarEvent
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// FirstOverlap returns the earliest of the user's events whose
// half-open interval intersects [start, end), or nil when there is
// none. Touching boundaries do not overlap. excludeID > 0 leaves that
// event out of the scan.
func (s *Store) FirstOverlap(ctx context.Context, userID int64, start, end time.Time, excludeID int64) (*model.CalendarEvent, error) {
	q := `SELECT ` + eventColumns + ` FROM calendar_events
	      WHERE user_id = $1
	        AND start_time < $3
	        AND end_time > $2`
	args := []any{userID, start, end}

	if excludeID > 0 {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += ` ORDER BY start_time ASC, id ASC LIMIT 1`

	e := &model.CalendarEvent{}
	err := scanEvent(s.pool.QueryRow(ctx, q, args...), e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (s *Store) UpdateEvent(ctx context.Context, e *model.CalendarEvent) error {
	return s.pool.QueryRow(ctx,
		`UPDATE calendar_events
		 SET title=$1, description=$2, start_time=$3, end_time=$4, linked_task_id=$5, updated_at=NOW()
		 WHERE id=$6 AND user_id=$7
		 RETURNING updated_at`,
		e.Title, e.Description, e.StartTime, e.EndTime, e.LinkedTaskID, e.ID, e.UserID,
	).Scan(&e.UpdatedAt)
}

func (s *Store) DeleteEvent(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Calendar event")
	}
	return nil
}
