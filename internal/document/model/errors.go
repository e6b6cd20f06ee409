package model

import "errors"

var (
	// ErrNotFound means the document id did not resolve to a room.
	ErrNotFound = errors.New("document not found")

	// ErrAccessDenied means the user has no access entry on the document.
	ErrAccessDenied = errors.New("you do not have access to this document")

	// ErrSelfRemovalForbidden means the creator tried to remove their own
	// access. The creator's entry is never removable through the sharing flow.
	ErrSelfRemovalForbidden = errors.New("you cannot remove yourself from the document")
)
