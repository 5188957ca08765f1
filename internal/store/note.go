package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/model"
)

func (s *Store) CreateNote(ctx context.Context, n *model.Note) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content) VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`,
		n.UserID, n.Title, n.Content,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (s *Store) GetNote(ctx context.Context, userID, id int64) (*model.Note, error) {
	n := &model.Note{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Note")
		}
		return nil, err
	}
	return n, nil
}

// ListNotes returns the caller's notes newest-edited first. An empty
// search matches everything; otherwise it is a case-insensitive
// substring match on the title.
func (s *Store) ListNotes(ctx context.Context, userID int64, search string, skip, limit int) ([]model.Note, error) {
	q := `SELECT id, user_id, title, content, created_at, updated_at
	      FROM notes WHERE user_id = $1`
	args := []any{userID}

	if search != "" {
		q += ` AND title ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}
	args = append(args, limit, skip)
	q += ` ORDER BY updated_at DESC, id DESC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UpdateNote(ctx context.Context, n *model.Note) error {
	return s.pool.QueryRow(ctx,
		`UPDATE notes SET title=$1, content=$2, updated_at=NOW()
		 WHERE id=$3 AND user_id=$4
		 RETURNING updated_at`,
		n.Title, n.Content, n.ID, n.UserID,
	).Scan(&n.UpdatedAt)
}

func (s *Store) DeleteNote(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Note")
	}
	return nil
}
