package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
)

func (s *Store) CreateTask(ctx context.Context, t *model.Task) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, due_date, status)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Title, t.Description, t.DueDate, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *Store) GetTask(ctx context.Context, userID, id int64) (*model.Task, error) {
	t := &model.Task{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, title, description, due_date, status, created_at, updated_at
		 FROM tasks WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Task")
		}
		return nil, err
	}
	return t, nil
}

// ListTasks orders by due date ascending with undated tasks last. An
// empty status matches all statuses.
func (s *Store) ListTasks(ctx context.Context, userID int64, status model.TaskStatus, skip, limit int) ([]model.Task, error) {
	q := `SELECT id, user_id, title, description, due_date, status, created_at, updated_at
	      FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if status != "" {
		q += ` AND status = $2`
		args = append(args, status)
	}
	args = append(args, limit, skip)
	q += ` ORDER BY due_date ASC NULLS LAST, id ASC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t *model.Task) error {
	return s.pool.QueryRow(ctx,
		`UPDATE tasks SET title=$1, description=$2, due_date=$3, status=$4, updated_at=NOW()
		 WHERE id=$5 AND user_id=$6
		 RETURNING updated_at`,
		t.Title, t.Description, t.DueDate, t.Status, t.ID, t.UserID,
	).Scan(&t.UpdatedAt)
}

// DeleteTask removes the row; the schema clears linked_task_id on
// dependent calendar events (SET NULL) rather than deleting them.
func (s *Store) DeleteTask(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}
	return nil
}
