package notify

import (
	"context"

	"livedocs/internal/document/model"
)

// Store is the slice of the notification inbox the sink needs.
type Store interface {
	Insert(ctx context.Context, n model.Notification) error
}

// Sink persists a notification and then pushes it to the target user's open
// connections. The insert is the durable step; the push is fire-and-forget.
type Sink struct {
	Store Store
	Hub   *Hub
}

func NewSink(store Store, hub *Hub) *Sink {
	return &Sink{Store: store, Hub: hub}
}

func (s *Sink) Notify(ctx context.Context, n model.Notification) error {
	if err := s.Store.Insert(ctx, n); err != nil {
		return err
	}
	s.Hub.Push(n)
	return nil
}
