package service

import (
	"context"

	"livedocs/internal/document/model"
)

// RoomStore is the contract the services expect from the room backend. All
// returned documents are detached snapshots.
type RoomStore interface {
	// Get returns the document or model.ErrNotFound.
	Get(ctx context.Context, roomID string) (*model.Document, error)

	// Create persists a new room with its initial access entries.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Update applies a partial update and returns the new snapshot. A nil
	// permission slice in update.Accesses removes that entry. Returns
	// model.ErrNotFound when the room does not exist.
	Update(ctx context.Context, roomID string, update model.RoomUpdate) (*model.Document, error)

	// Delete removes the room and all of its access entries.
	Delete(ctx context.Context, roomID string) error

	// Query returns every document whose access map contains userEmail,
	// most recently updated first.
	Query(ctx context.Context, userEmail string) ([]*model.Document, error)
}

// NotificationSink delivers an in-app notification to its target user.
// Delivery is best-effort from the caller's perspective.
type NotificationSink interface {
	Notify(ctx context.Context, n model.Notification) error
}

// NotificationStore persists the per-user notification inbox.
type NotificationStore interface {
	Insert(ctx context.Context, n model.Notification) error
	ListByTarget(ctx context.Context, targetEmail string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, targetEmail string) error
}
