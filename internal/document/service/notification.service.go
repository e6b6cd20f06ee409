package service

import (
	"context"

	"livedocs/internal/document/model"
)

// NotificationService exposes the per-user inbox.
type NotificationService struct {
	Store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{Store: store}
}

func (s *NotificationService) List(ctx context.Context, targetEmail string) ([]model.Notification, error) {
	return s.Store.ListByTarget(ctx, targetEmail)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, targetEmail string) error {
	return s.Store.MarkRead(ctx, id, targetEmail)
}
