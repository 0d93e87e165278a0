package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/td0m/taskboard/pkg/task"
)

// Restore builds a store from the last saved board, or from the example
// board when nothing was saved yet
func Restore(p Persistor, opts ...task.Option) (*task.Store, error) {
	tasks, err := p.Load()
	switch {
	case errors.Is(err, ErrNoSnapshot):
		return task.NewStore(opts...), nil
	case err != nil:
		return nil, fmt.Errorf("failed to restore tasks: %w", err)
	}
	return task.NewStore(append(opts, task.WithTasks(tasks))...), nil
}

// Sync saves every snapshot the store publishes from now on, until ctx is
// done or the store is closed. A failed save is logged and retried with the
// next snapshot, or once more on the way out. The returned channel is closed
// when the last save has finished.
func Sync(ctx context.Context, s *task.Store, p Persistor, logger *slog.Logger) <-chan struct{} {
	sub := s.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer s.Unsubscribe(sub)
		run(ctx, sub, p, logger)
	}()
	return done
}

func run(ctx context.Context, sub <-chan task.Snapshot, p Persistor, logger *slog.Logger) {
	var (
		last  task.Snapshot
		dirty bool
	)
	save := func(snap task.Snapshot) {
		last = snap
		if err := p.Save(snap.Tasks); err != nil {
			dirty = true
			logger.Error("failed to save tasks", "version", snap.Version, "err", err)
			return
		}
		dirty = false
		logger.Debug("saved tasks", "version", snap.Version, "count", len(snap.Tasks))
	}

	for {
		select {
		case <-ctx.Done():
			// a mutation may have landed right before cancellation
			select {
			case snap, ok := <-sub:
				if ok {
					save(snap)
				}
			default:
			}
			if dirty {
				save(last)
			}
			return
		case snap, ok := <-sub:
			if !ok {
				if dirty {
					save(last)
				}
				return
			}
			save(snap)
		}
	}
}
