package service

import (
	"context"
	"fmt"
	"time"

	"livedocs/internal/access"
	"livedocs/internal/document/model"
	"livedocs/pkg/logger"

	"github.com/google/uuid"
)

// SharingService orchestrates access changes on a document: it computes the
// permission set for the requested role, persists it through the room store,
// and emits a notification to the affected user. The permission write is the
// durable fact of record; the notification is best-effort.
type SharingService struct {
	Rooms RoomStore
	Sink  NotificationSink
}

func NewSharingService(rooms RoomStore, sink NotificationSink) *SharingService {
	return &SharingService{Rooms: rooms, Sink: sink}
}

// GrantOrUpdateAccess replaces the target's access entry with the permission
// set for role and notifies the target. Granting the same role twice is a
// no-op on the entry; changing the role replaces the set outright, never
// merges. Self-role-change is permitted.
func (s *SharingService) GrantOrUpdateAccess(ctx context.Context, roomID, targetEmail string, role access.Role, actor model.UserInfo) (*model.Document, error) {
	update := model.RoomUpdate{
		Accesses: map[string][]access.Permission{
			targetEmail: access.PermissionsFor(role),
		},
	}

	doc, err := s.Rooms.Update(ctx, roomID, update)
	if err != nil {
		return nil, err
	}

	n := model.Notification{
		ID:          uuid.NewString(),
		TargetEmail: targetEmail,
		Kind:        model.NotificationKindDocumentAccess,
		RoomID:      roomID,
		Activity: model.NotificationActivity{
			Role:      string(role),
			Title:     fmt.Sprintf("You have been granted %s access to the document by %s", role, actor.Name),
			UpdatedBy: actor.Name,
			Avatar:    actor.Avatar,
			Email:     actor.Email,
		},
		CreatedAt: time.Now(),
	}
	if err := s.Sink.Notify(ctx, n); err != nil {
		// The access change already succeeded; never roll it back over a
		// notification failure.
		logger.Sugar.Errorf("Failed to notify %s about access change on doc %s: %v", targetEmail, roomID, err)
	}

	return doc, nil
}

// RemoveAccess deletes the target's access entry. Removing the stored
// creator's entry fails with model.ErrSelfRemovalForbidden and performs no
// write.
func (s *SharingService) RemoveAccess(ctx context.Context, roomID, targetEmail string) (*model.Document, error) {
	doc, err := s.Rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if doc.Metadata.CreatorEmail == targetEmail {
		return nil, model.ErrSelfRemovalForbidden
	}

	update := model.RoomUpdate{
		Accesses: map[string][]access.Permission{
			targetEmail: nil,
		},
	}
	return s.Rooms.Update(ctx, roomID, update)
}

// ListAccessibleDocuments returns every document the user appears in, in the
// store's query order.
func (s *SharingService) ListAccessibleDocuments(ctx context.Context, userEmail string) ([]*model.Document, error) {
	return s.Rooms.Query(ctx, userEmail)
}
