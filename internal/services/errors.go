// Package services defines the business logic for the funnel and web contact
// lists. This file centralizes common service-level error values so that they
// can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/command layer.
package services

import "errors"

// Contact-related errors.
var (
	// ErrContactExists indicates that an add targeted a name already present
	// in the funnel store (compared case-insensitively after trimming).
	ErrContactExists = errors.New("contact already exists")

	// ErrContactNotFound indicates that the requested contact does not exist
	// in the targeted store.
	ErrContactNotFound = errors.New("contact not found")

	// ErrNoChanges is returned when an update carries no field that alters
	// the stored contact.
	ErrNoChanges = errors.New("no changes to apply")

	// ErrNameRequired is returned when a create request is missing a
	// non-empty name.
	ErrNameRequired = errors.New("name is required")

	// ErrUnknownFilter is returned when a list filter names a stage that
	// does not exist.
	ErrUnknownFilter = errors.New("unknown stage filter")
)
