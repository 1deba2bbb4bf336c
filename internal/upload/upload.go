// Package upload stores facility and court images in object storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

var ErrUpstream = errors.New("image storage unavailable")

type Uploader interface {
	// Upload stores body under a name derived from filename and returns its
	// public URL.
	Upload(ctx context.Context, filename, contentType string, body []byte) (string, error)
}

// Retrying bounds each attempt of an Uploader with a timeout and retries a
// failed attempt once.
type Retrying struct {
	next    Uploader
	timeout time.Duration
	wait    time.Duration
}

func NewRetrying(next Uploader, timeout time.Duration) *Retrying {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Retrying{next: next, timeout: timeout, wait: 200 * time.Millisecond}
}

// Upload returns ErrUpstream once both attempts failed.
func (r *Retrying) Upload(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	const op = "upload.Retrying.Upload"

	url, err := backoff.Retry(ctx,
		func() (string, error) {
			attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			return r.next.Upload(attemptCtx, filename, contentType, body)
		},
		backoff.WithBackOff(backoff.NewConstantBackOff(r.wait)),
		backoff.WithMaxTries(2),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s:%w", op, ctx.Err())
		}
		return "", fmt.Errorf("%s:%w: %v", op, ErrUpstream, err)
	}

	return url, nil
}
