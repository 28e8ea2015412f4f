package core

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DB is the subset of *sqlx.DB the repositories depend on.
type DB interface {
	DriverName() string
	Rebind(query string) string
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	PingContext(ctx context.Context) error
}
