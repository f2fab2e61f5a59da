package async

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Go runs fn in a new goroutine and delivers its result on the returned
// channel. A panic is recovered, logged and delivered as an error.
func Go(ctx context.Context, fn func(ctx context.Context) error) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(ctx).Error("panic in goroutine", "panic", r)
				errCh <- goerr.New("panic in goroutine", goerr.V("panic", r))
			}
		}()

		errCh <- fn(ctx)
	}()

	return errCh
}
