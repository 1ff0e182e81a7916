package ornament

import (
	"context"
	"time"
)

// gesturePoller runs tick on a fixed wall-clock period until its context is
// cancelled. The period is independent of render and detection rates. On
// exit it calls expired, if set, before done is closed.
type gesturePoller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func startGesturePoller(ctx context.Context, interval time.Duration, tick func(context.Context), expired func(*gesturePoller)) *gesturePoller {
	ctx, cancel := context.WithCancel(ctx)
	p := &gesturePoller{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				if expired != nil {
					expired(p)
				}
				return
			case <-t.C:
				tick(ctx)
			}
		}
	}()
	return p
}

// stop cancels the poller and waits for its goroutine to exit. It must not
// be called while holding a lock that tick or expired acquires.
func (p *gesturePoller) stop() {
	p.cancel()
	<-p.done
}
