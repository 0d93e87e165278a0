package task

// Subscribe returns a channel that receives a snapshot after every committed
// mutation. Slow subscribers only ever see the latest snapshot: a pending,
// unread one is replaced rather than queued.
func (s *Store) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Store) Unsubscribe(sub <-chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		if ch == sub {
			delete(s.subs, ch)
			close(ch)
			return
		}
	}
}

// Close ends the store's lifetime for observers: every subscriber channel is
// closed. The store itself stays usable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.closed = true
}

// publish must be called with s.mu held
func (s *Store) publish() {
	s.version++
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshot()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		// each subscriber gets its own copy
		own := Snapshot{Version: snap.Version, Tasks: make([]Task, len(snap.Tasks))}
		for i, t := range snap.Tasks {
			own.Tasks[i] = t.clone()
		}
		ch <- own
	}
}
