// Package database defines the backend-agnostic store contract. Handlers and
// repositories write SQL with positional `?` placeholders; each backend is
// responsible for translating that into whatever its driver expects.
package database

import "context"

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	// Exec runs an update or delete and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Insert runs an insert and reports the id assigned to the new row.
	Insert(ctx context.Context, query string, args ...any) (int64, error)

	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Dialect() Dialect
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

// Dialect carries the per-backend SQL differences so that schema setup and
// error classification never inspect driver errors or dialect strings inline.
type Dialect interface {
	Name() string

	// AutoIncrementPK is the column definition for an auto-assigned integer
	// primary key named id.
	AutoIncrementPK() string

	// IsDuplicateColumn reports whether err means an additive ALTER TABLE
	// hit a column that already exists.
	IsDuplicateColumn(err error) bool

	// IsUniqueViolation reports whether err means a unique constraint was
	// violated, e.g. a duplicate user email.
	IsUniqueViolation(err error) bool
}
