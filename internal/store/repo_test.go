package store

import (
	"context"
	"errors"
	"testing"

	"demo/minimart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	user model.User
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.user.ID
	*dest[1].(*string) = r.user.Username
	return nil
}

type fakeTx struct {
	pgx.Tx
	inserted   []string
	failOn     string
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	name := args[0].(string)
	if name == tx.failOn {
		return pgconn.CommandTag{}, errors.New("unique violation")
	}
	tx.inserted = append(tx.inserted, name)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

type fakePool struct {
	row     fakeRow
	gotArgs []any
	tx      *fakeTx
	pingErr error
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) { return p.tx, nil }

func (p *fakePool) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	p.gotArgs = args
	return p.row
}

func (p *fakePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) Ping(context.Context) error { return p.pingErr }

func TestRepo_FindUserByID_Found(t *testing.T) {
	pool := &fakePool{row: fakeRow{user: model.User{ID: 7, Username: "User 7"}}}
	repo := New(pool)

	u, ok, err := repo.FindUserByID(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, model.User{ID: 7, Username: "User 7"}, u)
	require.Equal(t, []any{int64(7)}, pool.gotArgs)
}

func TestRepo_FindUserByID_NoRows(t *testing.T) {
	repo := New(&fakePool{row: fakeRow{err: pgx.ErrNoRows}})

	u, ok, err := repo.FindUserByID(context.Background(), 999)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, u)
}

func TestRepo_FindUserByID_Error(t *testing.T) {
	boom := errors.New("connection reset by peer")
	repo := New(&fakePool{row: fakeRow{err: boom}})

	_, ok, err := repo.FindUserByID(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	require.False(t, ok)
}

func TestRepo_InsertUsers(t *testing.T) {
	tx := &fakeTx{}
	repo := New(&fakePool{tx: tx})

	n, err := repo.InsertUsers(context.Background(), []string{"User 1", "User 2"})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	require.Equal(t, []string{"User 1", "User 2"}, tx.inserted)
	require.True(t, tx.committed)
}

func TestRepo_InsertUsers_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{failOn: "User 2"}
	repo := New(&fakePool{tx: tx})

	_, err := repo.InsertUsers(context.Background(), []string{"User 1", "User 2"})
	require.Error(t, err)
	require.False(t, tx.committed)
	require.True(t, tx.rolledBack)
}

func TestMigrateURL(t *testing.T) {
	require.Equal(t, "pgx5://app:app@db:5432/minimart?sslmode=disable",
		migrateURL("postgres://app:app@db:5432/minimart?sslmode=disable"))
	require.Equal(t, "pgx5://db/minimart", migrateURL("postgresql://db/minimart"))
	require.Equal(t, "pgx5://db/minimart", migrateURL("pgx5://db/minimart"))
}
