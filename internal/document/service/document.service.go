package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"livedocs/internal/access"
	"livedocs/internal/document/model"

	"github.com/google/uuid"
)

// DocumentService owns the document lifecycle around the room store: create,
// fetch with an access check, rename, delete, and collaborator lookup.
type DocumentService struct {
	Rooms RoomStore
}

func NewDocumentService(rooms RoomStore) *DocumentService {
	return &DocumentService{Rooms: rooms}
}

// Create makes a new untitled document owned by actor. The creator's email
// is seeded into the access map with write permission.
func (s *DocumentService) Create(ctx context.Context, actor model.UserInfo) (*model.Document, error) {
	now := time.Now()
	doc := &model.Document{
		ID: uuid.NewString(),
		Metadata: model.RoomMetadata{
			Title:        "Untitled",
			CreatorID:    actor.ID,
			CreatorEmail: actor.Email,
		},
		Accesses: map[string][]access.Permission{
			actor.Email: access.PermissionsFor(access.RoleCreator),
		},
		DefaultAccesses: []access.Permission{access.PermissionWrite},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.Rooms.Create(ctx, doc)
}

// Get returns the document when userEmail holds an access entry on it.
func (s *DocumentService) Get(ctx context.Context, roomID, userEmail string) (*model.Document, error) {
	doc, err := s.Rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.Accesses[userEmail]; !ok {
		return nil, model.ErrAccessDenied
	}
	return doc, nil
}

// Rename updates the document title. Creator metadata is immutable.
func (s *DocumentService) Rename(ctx context.Context, roomID, title string) (*model.Document, error) {
	return s.Rooms.Update(ctx, roomID, model.RoomUpdate{Title: &title})
}

// Delete removes the document and, cascading inside the store, every access
// entry on it.
func (s *DocumentService) Delete(ctx context.Context, roomID string) error {
	return s.Rooms.Delete(ctx, roomID)
}

// ListUsers returns the emails holding access on the document, excluding the
// caller, optionally narrowed by a case-insensitive substring filter. Output
// is sorted so the order is stable across calls.
func (s *DocumentService) ListUsers(ctx context.Context, roomID, currentUserEmail, filter string) ([]string, error) {
	doc, err := s.Rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(filter)
	emails := make([]string, 0, len(doc.Accesses))
	for email := range doc.Accesses {
		if email == currentUserEmail {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(email), needle) {
			continue
		}
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}
