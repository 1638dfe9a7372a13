// Package pkg provides small reusable utilities for wpreview.
package pkg

import (
	"context"
	"log/slog"
	"time"
)

// Debounce coalesces bursts of values from in: after each received value it
// waits for the quiet period to elapse with no further values, then emits the
// most recent one. The returned channel closes when in closes or ctx is
// cancelled.
func Debounce[T any](ctx context.Context, in <-chan T, quiet time.Duration) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		var (
			pending T
			dirty   bool
			timer   *time.Timer
			fire    <-chan time.Time
		)

		stopTimer := func() {
			if timer != nil {
				timer.Stop()
			}
		}
		defer stopTimer()

		for {
			select {
			case <-ctx.Done():
				return

			case v, ok := <-in:
				if !ok {
					// Flush whatever is pending before shutting down.
					if dirty {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}

					return
				}

				pending = v
				dirty = true

				stopTimer()
				timer = time.NewTimer(quiet)
				fire = timer.C

			case <-fire:
				fire = nil
				dirty = false

				slog.Debug("debounce period elapsed, emitting")

				select {
				case out <- pending:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
