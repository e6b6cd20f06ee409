package model

import (
	"time"

	"livedocs/internal/access"
)

// RoomMetadata is the immutable-except-title metadata stored on a document.
// CreatorID and CreatorEmail are set at creation and never change.
type RoomMetadata struct {
	Title        string `json:"title"`
	CreatorID    string `json:"creatorId"`
	CreatorEmail string `json:"email"`
}

// Document is a snapshot of a room and its access map. Values returned by a
// store are detached copies; mutating them never touches persisted state.
type Document struct {
	ID              string                         `json:"id"`
	Metadata        RoomMetadata                   `json:"metadata"`
	Accesses        map[string][]access.Permission `json:"usersAccesses"`
	DefaultAccesses []access.Permission            `json:"defaultAccesses"`
	CreatedAt       time.Time                      `json:"createdAt"`
	UpdatedAt       time.Time                      `json:"updatedAt"`
}

// Clone returns a deep copy of the document with its own access map and
// permission slices.
func (d *Document) Clone() *Document {
	out := *d
	out.Accesses = make(map[string][]access.Permission, len(d.Accesses))
	for email, perms := range d.Accesses {
		out.Accesses[email] = append([]access.Permission(nil), perms...)
	}
	out.DefaultAccesses = append([]access.Permission(nil), d.DefaultAccesses...)
	return &out
}

// RoomUpdate is a partial update applied to a room. A nil permission slice
// for an email removes that access entry; a non-nil slice replaces it.
type RoomUpdate struct {
	Title    *string
	Accesses map[string][]access.Permission
}

// UserInfo identifies the authenticated user performing an operation.
type UserInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

const NotificationKindDocumentAccess = "$documentAccess"

// NotificationActivity is the payload shown in the target user's inbox.
type NotificationActivity struct {
	Role      string `json:"userType"`
	Title     string `json:"title"`
	UpdatedBy string `json:"updatedBy"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
}

// Notification is a single in-app inbox entry addressed to one user.
type Notification struct {
	ID          string               `json:"id"`
	TargetEmail string               `json:"target_email"`
	Kind        string               `json:"kind"`
	RoomID      string               `json:"room_id"`
	Activity    NotificationActivity `json:"activity"`
	Read        bool                 `json:"read"`
	CreatedAt   time.Time            `json:"created_at"`
}

type UpdateAccessRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RenameRequest struct {
	Title string `json:"title"`
}
