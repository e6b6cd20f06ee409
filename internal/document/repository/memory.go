package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"livedocs/internal/access"
	"livedocs/internal/document/model"
)

// MemoryStore is an in-memory RoomStore for local development and tests.
// Every document crossing the boundary is cloned, so callers can never reach
// the stored state through a returned snapshot.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*model.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rooms: make(map[string]*model.Document)}
}

func (m *MemoryStore) Get(ctx context.Context, roomID string) (*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.rooms[roomID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *MemoryStore) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms[doc.ID] = doc.Clone()
	return doc.Clone(), nil
}

func (m *MemoryStore) Update(ctx context.Context, roomID string, update model.RoomUpdate) (*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.rooms[roomID]
	if !ok {
		return nil, model.ErrNotFound
	}

	if update.Title != nil {
		doc.Metadata.Title = *update.Title
	}
	for email, perms := range update.Accesses {
		if perms == nil {
			delete(doc.Accesses, email)
		} else {
			doc.Accesses[email] = append([]access.Permission(nil), perms...)
		}
	}
	doc.UpdatedAt = time.Now()
	return doc.Clone(), nil
}

func (m *MemoryStore) Delete(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[roomID]; !ok {
		return model.ErrNotFound
	}
	delete(m.rooms, roomID)
	return nil
}

func (m *MemoryStore) Query(ctx context.Context, userEmail string) ([]*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*model.Document
	for _, doc := range m.rooms {
		if _, ok := doc.Accesses[userEmail]; ok {
			out = append(out, doc.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// MemoryNotificationStore is the in-memory inbox companion to MemoryStore.
type MemoryNotificationStore struct {
	mu      sync.RWMutex
	byEmail map[string][]model.Notification
}

func NewMemoryNotificationStore() *MemoryNotificationStore {
	return &MemoryNotificationStore{byEmail: make(map[string][]model.Notification)}
}

func (m *MemoryNotificationStore) Insert(ctx context.Context, n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byEmail[n.TargetEmail] = append(m.byEmail[n.TargetEmail], n)
	return nil
}

func (m *MemoryNotificationStore) ListByTarget(ctx context.Context, targetEmail string) ([]model.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]model.Notification(nil), m.byEmail[targetEmail]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryNotificationStore) MarkRead(ctx context.Context, id, targetEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.byEmail[targetEmail]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return nil
		}
	}
	return model.ErrNotFound
}
