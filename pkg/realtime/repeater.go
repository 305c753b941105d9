package realtime

import (
	"context"
	"time"
)

// Repeater calls a function every period on its own goroutine until cancelled.
// The zero value is ready to use.
type Repeater struct{}

// Arm starts calling fire every period. The returned cancel never blocks; a fire
// already in progress runs to completion.
func (Repeater) Arm(period time.Duration, fire func()) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())
	go func() {
		timer := time.NewTimer(period)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if ctx.Err() != nil {
				return
			}
			fire()
			timer.Reset(period)
		}
	}()
	return stop
}
