package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/courtbook/internal/service/booking"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReconcilerRejectsBadSchedule(t *testing.T) {
	_, err := newReconciler("every now and then", func(context.Context) (*booking.ReconcileReport, error) {
		return &booking.ReconcileReport{}, nil
	}, discardLogger())

	assert.Error(t, err)
}

func TestNewReconcilerRunsJob(t *testing.T) {
	ran := make(chan struct{}, 1)
	c, err := newReconciler("@every 1h", func(context.Context) (*booking.ReconcileReport, error) {
		ran <- struct{}{}
		return &booking.ReconcileReport{Released: []int64{7}}, nil
	}, discardLogger())
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 1)

	entries[0].WrappedJob.Run()

	select {
	case <-ran:
	default:
		t.Fatal("reconcile was not called")
	}
}
