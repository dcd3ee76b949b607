// Package store – FunnelStore
//
// FunnelStore persists the CLI contact list (data/funnel.json by default).
// The handle is explicit rather than a process-wide singleton so commands and
// tests inject their own paths.
package store

import (
	"context"
	"sync"

	"github.com/speakergym/funnel-tracker/internal/domain"
)

// FunnelStore is a handle on one CLI funnel document. The zero value is not
// usable; construct with NewFunnelStore. Safe for concurrent use.
type FunnelStore struct {
	path string
	mu   sync.Mutex
}

// NewFunnelStore returns a store handle backed by the JSON document at path.
// The file is created on first access, not here.
func NewFunnelStore(path string) *FunnelStore {
	return &FunnelStore{path: path}
}

// Path returns the backing file path.
func (s *FunnelStore) Path() string { return s.path }

// Load reads the whole document, creating the backing file with an empty
// contact list when it is missing. The returned document is the caller's own
// copy; mutating it does not touch the store.
func (s *FunnelStore) Load(ctx context.Context) (*domain.FunnelDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Update runs fn against the current document inside the store lock and saves
// the document back only when fn reports a change. fn errors abort the cycle
// and leave the file untouched. This is the only supported way to mutate an
// existing document; it keeps the read-modify-write atomic per handle.
func (s *FunnelStore) Update(ctx context.Context, fn func(*domain.FunnelDocument) (changed bool, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return writeDocument(s.path, doc)
}

// Replace overwrites the whole document unconditionally. Used by reset.
func (s *FunnelStore) Replace(ctx context.Context, doc *domain.FunnelDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Contacts == nil {
		doc.Contacts = []domain.Contact{}
	}
	return writeDocument(s.path, doc)
}

// loadLocked reads the document assuming the caller holds the lock, seeding
// the file with an empty contact list when it does not exist yet.
func (s *FunnelStore) loadLocked() (*domain.FunnelDocument, error) {
	doc := &domain.FunnelDocument{Contacts: []domain.Contact{}}
	found, err := readDocument(s.path, doc)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := writeDocument(s.path, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if doc.Contacts == nil {
		doc.Contacts = []domain.Contact{}
	}
	return doc, nil
}
