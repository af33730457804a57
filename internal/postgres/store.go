// Package postgres implements the roster storage ports on PostgreSQL via
// pgx. One Store serves every port; files are split by concern.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store provides access to all persistence operations.
type Store struct {
	db DBTX
}

// NewStore creates a Store backed by the given pool or transaction.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// Pool is a convenience constructor for the common pooled case.
func Pool(pool *pgxpool.Pool) *Store {
	return NewStore(pool)
}
