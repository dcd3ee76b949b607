// Package services – FunnelService
//
// This file implements the FunnelService, which manages the CLI-owned contact
// list. It normalizes names, enforces the case-insensitive name uniqueness
// rule, applies tri-state stage updates, and reports aggregate stage counts.
// Every mutation runs as a single load-mutate-save cycle inside the store
// lock, so concurrent callers cannot drop each other's writes.
//
// Service-level errors (e.g., ErrContactNotFound) are returned for
// predictable cases so commands and handlers can map them to user-facing
// messages consistently.
package services

import (
	"context"
	"strings"

	"github.com/speakergym/funnel-tracker/internal/domain"
	"github.com/speakergym/funnel-tracker/internal/store"
)

// StageFilter selects a funnel stage when listing contacts. The zero value
// selects every contact.
type StageFilter string

// Recognized list filters. The names double as the CLI flag vocabulary.
const (
	FilterNone             StageFilter = ""
	FilterJoined           StageFilter = "joined"
	FilterChallenge        StageFilter = "challenge"
	FilterContactSubmitted StageFilter = "contact_submitted"
)

// ParseStageFilter maps a user-supplied filter name onto a StageFilter.
// The empty string selects FilterNone; anything unrecognized is rejected
// with ErrUnknownFilter.
func ParseStageFilter(s string) (StageFilter, error) {
	switch f := StageFilter(s); f {
	case FilterNone, FilterJoined, FilterChallenge, FilterContactSubmitted:
		return f, nil
	default:
		return FilterNone, ErrUnknownFilter
	}
}

// matches reports whether c passes the filter.
func (f StageFilter) matches(c domain.Contact) bool {
	switch f {
	case FilterJoined:
		return c.Joined
	case FilterChallenge:
		return c.Challenge
	case FilterContactSubmitted:
		return c.ContactSubmitted
	default:
		return true
	}
}

// ContactUpdate carries the optional fields of an update. Nil pointers mean
// "leave as is"; a non-nil flag is applied only when it differs from the
// stored value, while non-nil Notes always overwrites.
type ContactUpdate struct {
	Joined           *bool
	Challenge        *bool
	ContactSubmitted *bool
	Notes            *string
}

// FunnelService provides the CLI contact operations: add, update, list,
// summary and reset over one funnel store handle.
type FunnelService struct {
	// Store is the funnel document handle used for persistence.
	Store *store.FunnelStore
}

// NewFunnelService constructs a FunnelService over the given store.
func NewFunnelService(st *store.FunnelStore) *FunnelService {
	return &FunnelService{Store: st}
}

// Add creates a contact with the trimmed name, empty stage flags and the
// current UTC timestamp, then appends it to the store. Names are unique
// case-insensitively; adding an existing name returns ErrContactExists and
// leaves the store untouched.
func (s *FunnelService) Add(ctx context.Context, name, notes string) (*domain.Contact, error) {
	var created domain.Contact
	err := s.Store.Update(ctx, func(doc *domain.FunnelDocument) (bool, error) {
		if doc.FindContact(name) != nil {
			return false, ErrContactExists
		}
		created = domain.Contact{
			Name:        strings.TrimSpace(name),
			ContactedAt: domain.UTCTimestamp(),
			Notes:       notes,
		}
		doc.Contacts = append(doc.Contacts, created)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies upd to the named contact. Stage flags are applied only when
// they differ from the stored value; Notes, when present, always overwrites.
// Returns ErrContactNotFound for unknown names and ErrNoChanges when nothing
// differed; in both cases the store file is left byte-identical.
func (s *FunnelService) Update(ctx context.Context, name string, upd ContactUpdate) (*domain.Contact, error) {
	var updated domain.Contact
	err := s.Store.Update(ctx, func(doc *domain.FunnelDocument) (bool, error) {
		contact := doc.FindContact(name)
		if contact == nil {
			return false, ErrContactNotFound
		}

		changed := false
		apply := func(field *bool, value *bool) {
			if value != nil && *field != *value {
				*field = *value
				changed = true
			}
		}
		apply(&contact.Joined, upd.Joined)
		apply(&contact.Challenge, upd.Challenge)
		apply(&contact.ContactSubmitted, upd.ContactSubmitted)
		if upd.Notes != nil {
			contact.Notes = *upd.Notes
			changed = true
		}
		if !changed {
			return false, ErrNoChanges
		}
		updated = *contact
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns the contacts passing the filter in store order.
func (s *FunnelService) List(ctx context.Context, filter StageFilter) ([]domain.Contact, error) {
	doc, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contact, 0, len(doc.Contacts))
	for _, c := range doc.Contacts {
		if filter.matches(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Summary counts the stored contacts per stage. Stages are independent, so
// one contact can count toward several of them at once.
func (s *FunnelService) Summary(ctx context.Context) (domain.Summary, error) {
	doc, err := s.Store.Load(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := domain.Summary{Total: len(doc.Contacts)}
	for _, c := range doc.Contacts {
		if c.Joined {
			sum.Joined++
		}
		if c.Challenge {
			sum.Challenge++
		}
		if c.ContactSubmitted {
			sum.ContactSubmitted++
		}
	}
	return sum, nil
}

// Reset unconditionally replaces the store with an empty contact list.
func (s *FunnelService) Reset(ctx context.Context) error {
	return s.Store.Replace(ctx, &domain.FunnelDocument{})
}
