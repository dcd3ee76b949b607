package store

import (
	"context"
	"sync"

	"github.com/speakergym/funnel-tracker/internal/domain"
)

// WebStore is a handle on one web contact document (data/web_contacts.json by
// default). Same contract as FunnelStore over the web schema.
type WebStore struct {
	path string
	mu   sync.Mutex
}

// NewWebStore returns a store handle backed by the JSON document at path.
func NewWebStore(path string) *WebStore {
	return &WebStore{path: path}
}

// Path returns the backing file path.
func (s *WebStore) Path() string { return s.path }

// Load reads the whole document, creating the backing file with an empty
// contact list when it is missing.
func (s *WebStore) Load(ctx context.Context) (*domain.WebDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Update runs fn against the current document inside the store lock and saves
// the document back only when fn reports a change.
func (s *WebStore) Update(ctx context.Context, fn func(*domain.WebDocument) (changed bool, err error)) error {
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

// Replace overwrites the whole document unconditionally. Import uses this to
// swap the contact list for the uploaded one.
func (s *WebStore) Replace(ctx context.Context, doc *domain.WebDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Contacts == nil {
		doc.Contacts = []domain.WebContact{}
	}
	return writeDocument(s.path, doc)
}

func (s *WebStore) loadLocked() (*domain.WebDocument, error) {
	doc := &domain.WebDocument{Contacts: []domain.WebContact{}}
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
		doc.Contacts = []domain.WebContact{}
	}
	return doc, nil
}
