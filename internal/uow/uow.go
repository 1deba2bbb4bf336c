package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	postgres "github.com/kirinyoku/courtbook/internal/repository/postgres"
)

const defaultAttempts = 3

// AfterCommit is a function that runs after a successful transaction commit.
type AfterCommit func(ctx context.Context)

// TxFunc is the body of a unit of work. It may run more than once, so it
// must not have effects outside tx other than registering hooks.
type TxFunc func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error

type txRunner interface {
	RunTx(ctx context.Context, opts *pgx.TxOptions, fn func(ctx context.Context, tx postgres.DB) error) error
}

// UoW represents a unit of work.
type UoW struct {
	store     txRunner
	attempts  int
	retryable func(error) bool
}

func NewUoW(store *postgres.Store) *UoW {
	return &UoW{
		store:     store,
		attempts:  defaultAttempts,
		retryable: postgres.IsRetryable,
	}
}

// Do runs fn inside a serializable transaction, retrying on serialization
// failures. After a successful commit, it executes the hooks registered by
// the attempt that committed.
func (u *UoW) Do(ctx context.Context, fn TxFunc) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts is Do with explicit transaction options.
func (u *UoW) DoWithOpts(ctx context.Context, opts *pgx.TxOptions, fn TxFunc) error {
	var err error

	for attempt := 1; attempt <= u.attempts; attempt++ {
		var hooks []AfterCommit

		err = u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgres.DB) error {
			return fn(ctx, tx, func(h AfterCommit) {
				hooks = append(hooks, h)
			})
		})
		if err == nil {
			for _, h := range hooks {
				h(ctx)
			}
			return nil
		}

		if !u.retryable(err) || errors.Is(ctx.Err(), context.Canceled) {
			return err
		}
	}

	return err
}
