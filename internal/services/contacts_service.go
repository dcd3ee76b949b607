// Package services – ContactsService
//
// This file implements the ContactsService, which manages the web UI contact
// list behind the HTTP API. Contacts are keyed by a millisecond timestamp id
// assigned at creation; names need to be present but are deliberately not
// unique here, matching the web schema. Import swaps the whole list for the
// uploaded rows instead of merging.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/speakergym/funnel-tracker/internal/domain"
	"github.com/speakergym/funnel-tracker/internal/store"
)

// NewContact carries the caller-supplied fields of a create request. Unset
// booleans stay false and an empty Notes is stored as is.
type NewContact struct {
	Name            string
	Notes           string
	JoinedCommunity bool
	TookChallenge   bool
	SubmittedPaid   bool
	Customer        bool
}

// WebContactUpdate carries the optional fields of a partial update. Nil
// pointers mean "leave as is"; any non-nil field overwrites, including an
// empty string. The id and creation timestamp are never updatable.
type WebContactUpdate struct {
	Name            *string
	Notes           *string
	JoinedCommunity *bool
	TookChallenge   *bool
	SubmittedPaid   *bool
	Customer        *bool
}

// ContactsService provides the web contact operations backing the HTTP API:
// list, get, create, update, delete and whole-store import.
type ContactsService struct {
	// Store is the web contact document handle used for persistence.
	Store *store.WebStore
}

// NewContactsService constructs a ContactsService over the given store.
func NewContactsService(st *store.WebStore) *ContactsService {
	return &ContactsService{Store: st}
}

// List returns every web contact in store order.
func (s *ContactsService) List(ctx context.Context) ([]domain.WebContact, error) {
	doc, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}

// Get returns the contact with the given id, or ErrContactNotFound.
func (s *ContactsService) Get(ctx context.Context, id int64) (*domain.WebContact, error) {
	doc, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	contact := doc.FindContact(id)
	if contact == nil {
		return nil, ErrContactNotFound
	}
	out := *contact
	return &out, nil
}

// Create appends a new contact with a fresh millisecond timestamp id and the
// current UTC creation time. A name that is empty after trimming is rejected
// with ErrNameRequired. When two creates land within the same millisecond the
// id is bumped until it is unique in the store.
func (s *ContactsService) Create(ctx context.Context, nc NewContact) (*domain.WebContact, error) {
	tr := otel.Tracer("services/ContactsService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("contact.name", nc.Name)),
	)
	defer span.End()

	name := strings.TrimSpace(nc.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var created domain.WebContact
	err := s.Store.Update(ctx, func(doc *domain.WebDocument) (bool, error) {
		created = domain.WebContact{
			ID:              nextContactID(doc, domain.UnixMilliNow()),
			Name:            name,
			Notes:           nc.Notes,
			JoinedCommunity: nc.JoinedCommunity,
			TookChallenge:   nc.TookChallenge,
			SubmittedPaid:   nc.SubmittedPaid,
			Customer:        nc.Customer,
			DateAdded:       domain.UTCTimestamp(),
		}
		doc.Contacts = append(doc.Contacts, created)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update overwrites the fields present in upd on the contact with the given
// id and returns the stored result. Unknown ids yield ErrContactNotFound.
func (s *ContactsService) Update(ctx context.Context, id int64, upd WebContactUpdate) (*domain.WebContact, error) {
	tr := otel.Tracer("services/ContactsService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("contact.id", id)),
	)
	defer span.End()

	var updated domain.WebContact
	err := s.Store.Update(ctx, func(doc *domain.WebDocument) (bool, error) {
		contact := doc.FindContact(id)
		if contact == nil {
			return false, ErrContactNotFound
		}
		if upd.Name != nil {
			contact.Name = *upd.Name
		}
		if upd.Notes != nil {
			contact.Notes = *upd.Notes
		}
		if upd.JoinedCommunity != nil {
			contact.JoinedCommunity = *upd.JoinedCommunity
		}
		if upd.TookChallenge != nil {
			contact.TookChallenge = *upd.TookChallenge
		}
		if upd.SubmittedPaid != nil {
			contact.SubmittedPaid = *upd.SubmittedPaid
		}
		if upd.Customer != nil {
			contact.Customer = *upd.Customer
		}
		updated = *contact
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the contact with the given id, or returns
// ErrContactNotFound when no stored contact carries it.
func (s *ContactsService) Delete(ctx context.Context, id int64) error {
	return s.Store.Update(ctx, func(doc *domain.WebDocument) (bool, error) {
		kept := doc.Contacts[:0]
		for _, c := range doc.Contacts {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(doc.Contacts) {
			return false, ErrContactNotFound
		}
		doc.Contacts = kept
		return true, nil
	})
}

// Import replaces the whole store with the given contacts and returns how
// many were stored. It never merges with the existing list.
func (s *ContactsService) Import(ctx context.Context, contacts []domain.WebContact) (int, error) {
	tr := otel.Tracer("services/ContactsService")
	ctx, span := tr.Start(ctx, "Import",
		trace.WithAttributes(attribute.Int("contact.count", len(contacts))),
	)
	defer span.End()

	doc := &domain.WebDocument{Contacts: contacts}
	if err := s.Store.Replace(ctx, doc); err != nil {
		return 0, err
	}
	return len(doc.Contacts), nil
}

// nextContactID returns candidate, bumped past any id already present in the
// document. Keeps ids unique when creates land within one millisecond.
func nextContactID(doc *domain.WebDocument, candidate int64) int64 {
	used := make(map[int64]struct{}, len(doc.Contacts))
	for _, c := range doc.Contacts {
		used[c.ID] = struct{}{}
	}
	for {
		if _, taken := used[candidate]; !taken {
			return candidate
		}
		candidate++
	}
}
