package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	postgres "github.com/kirinyoku/courtbook/internal/repository/postgres"
)

var errSerialization = errors.New("could not serialize access")

type fakeRunner struct {
	calls int
	errs  []error
}

func (f *fakeRunner) RunTx(
	ctx context.Context,
	_ *pgx.TxOptions,
	fn func(ctx context.Context, tx postgres.DB) error,
) error {
	f.calls++
	if err := fn(ctx, nil); err != nil {
		return err
	}
	if len(f.errs) >= f.calls {
		return f.errs[f.calls-1]
	}
	return nil
}

func newTestUoW(r *fakeRunner) *UoW {
	return &UoW{
		store:     r,
		attempts:  defaultAttempts,
		retryable: func(err error) bool { return errors.Is(err, errSerialization) },
	}
}

func TestDoRunsHooksAfterCommit(t *testing.T) {
	r := &fakeRunner{}
	u := newTestUoW(r)

	var ran []string
	err := u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = append(ran, "a") })
		after(func(context.Context) { ran = append(ran, "b") })
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, 1, r.calls)
}

func TestDoSkipsHooksOnError(t *testing.T) {
	boom := errors.New("boom")
	u := newTestUoW(&fakeRunner{})

	ran := false
	err := u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestDoRetriesSerializationFailures(t *testing.T) {
	r := &fakeRunner{errs: []error{errSerialization, errSerialization}}
	u := newTestUoW(r)

	hooks := 0
	err := u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		after(func(context.Context) { hooks++ })
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, r.calls)
	assert.Equal(t, 1, hooks)
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	r := &fakeRunner{errs: []error{errSerialization, errSerialization, errSerialization}}
	u := newTestUoW(r)

	err := u.Do(context.Background(), func(ctx context.Context, tx postgres.DB, after func(AfterCommit)) error {
		return nil
	})

	assert.ErrorIs(t, err, errSerialization)
	assert.Equal(t, defaultAttempts, r.calls)
}
