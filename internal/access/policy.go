package access

import "errors"

// Role is a user-facing access level on a document. Exactly one user per
// document holds RoleCreator; it is assigned at creation and never changes.
type Role string

const (
	RoleCreator Role = "creator"
	RoleEditor  Role = "editor"
	RoleViewer  Role = "viewer"
)

// ErrInvalidRole is returned by ParseRole for anything outside the enum.
var ErrInvalidRole = errors.New("invalid role: must be creator, editor, or viewer")

// ParseRole validates a raw role string at the system boundary. Code past the
// boundary only ever sees one of the three Role constants.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCreator, RoleEditor, RoleViewer:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Permission is a backend-level capability token attached to an access entry.
type Permission string

const (
	PermissionRead          Permission = "room:read"
	PermissionWrite         Permission = "room:write" // implies read in the backend's semantics
	PermissionPresenceWrite Permission = "room:presence:write"
)

// PermissionsFor maps a role to the permission set stored on its access
// entry. It is total: unrecognized input falls open to the viewer set rather
// than failing.
//
// Creator and editor intentionally resolve to the same set. The creator
// distinction is informational (the "Owner" label, the removal guard) and is
// carried by the document's creator metadata, not by permissions. Callers
// must not rely on this function to distinguish owner privilege.
func PermissionsFor(role Role) []Permission {
	switch role {
	case RoleCreator:
		return []Permission{PermissionWrite}
	case RoleEditor:
		return []Permission{PermissionWrite}
	case RoleViewer:
		return []Permission{PermissionRead, PermissionPresenceWrite}
	default:
		return []Permission{PermissionRead, PermissionPresenceWrite}
	}
}
