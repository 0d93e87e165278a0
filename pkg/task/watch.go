package task

import (
	"context"
	"time"
)

// Watch runs CheckOverdue right away and then once every interval until ctx
// is done, handing each result to fn.
func Watch(ctx context.Context, s *Store, every time.Duration, fn func([]ID)) {
	fn(s.CheckOverdue())

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(s.CheckOverdue())
		}
	}
}
