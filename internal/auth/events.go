package auth

import (
	"context"

	"github.com/mmynk/pocketledger/internal/models"
)

// Listener is called whenever the current identity changes.
// current is nil when nobody is signed in.
type Listener func(ctx context.Context, current *models.Identity)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn for identity change events and returns a function
// that removes it. Listeners run synchronously, in subscription order, on
// the goroutine that changed the identity.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// publish delivers the current identity to every subscriber. Each listener
// gets its own copy.
func (s *Store) publish(ctx context.Context) {
	s.subMu.Lock()
	subs := append([]subscription(nil), s.subs...)
	s.subMu.Unlock()

	current, ok := s.Current()
	for _, sub := range subs {
		if !ok {
			sub.fn(ctx, nil)
			continue
		}
		identity := current
		sub.fn(ctx, &identity)
	}
}
