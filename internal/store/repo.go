package store

//go:generate mockgen -destination=storemock/mock_repository.go -package=storemock demo/minimart/internal/store Repository

import (
	"context"
	"errors"
	"fmt"

	"demo/minimart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository is the persistence provider for user records.
type Repository interface {
	FindUserByID(ctx context.Context, id int64) (model.User, bool, error)
	InsertUsers(ctx context.Context, names []string) (int64, error)
	Ping(ctx context.Context) error
}

var _ Repository = (*Repo)(nil)

type Repo struct {
	Pool PgxIface
}

// PgxIface is the subset of *pgxpool.Pool the repo needs.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

func New(pool PgxIface) *Repo { return &Repo{Pool: pool} }

// FindUserByID returns ok=false with a nil error when no row matches.
func (r *Repo) FindUserByID(ctx context.Context, id int64) (model.User, bool, error) {
	var u model.User
	err := r.Pool.QueryRow(ctx, `SELECT id, name AS username FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, false, nil
		}
		return model.User{}, false, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, true, nil
}

// InsertUsers inserts one row per name in a single transaction and returns
// the number of rows written.
func (r *Repo) InsertUsers(ctx context.Context, names []string) (int64, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	for _, name := range names {
		tag, err := tx.Exec(ctx, `INSERT INTO users (name) VALUES ($1)`, name)
		if err != nil {
			return 0, fmt.Errorf("insert user %q: %w", name, err)
		}
		total += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return total, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}
