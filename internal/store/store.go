// Package store is the persistence layer. Every query that touches an
// owned resource filters by (id, user_id) in a single lookup, so a row
// owned by someone else is indistinguishable from a missing one.
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const (
	MinLimit = 1
	MaxLimit = 100
)
