// Package domain defines the persistence models for funnel contacts. Two
// schemas coexist on purpose: the CLI tracks contacts keyed by name in
// data/funnel.json, while the companion web UI keeps its own list keyed by a
// numeric id in data/web_contacts.json. The schemas evolved independently and
// are never synchronized or reconciled.
package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Contact represents one person in the CLI funnel store. Contacts move through
// three funnel stages; the stages are independent booleans, not a sequence, so
// a contact may count toward several stages at once.
//
// Fields:
//   - Name: display name, unique per store under case folding (see FoldName).
//   - ContactedAt: UTC ISO-8601 timestamp set at creation, never updated.
//   - Joined: stage 1, joined the community.
//   - Challenge: stage 2, took the 7-day challenge.
//   - ContactSubmitted: stage 3, submitted contact for the 90-day program.
//   - Notes: free text, empty by default.
type Contact struct {
	Name             string `json:"name"`
	ContactedAt      string `json:"contacted_at"`
	Joined           bool   `json:"joined"`
	Challenge        bool   `json:"challenge"`
	ContactSubmitted bool   `json:"contact_submitted"`
	Notes            string `json:"notes"`
}

// WebContact represents one person in the web UI store. It carries one more
// stage flag ("customer") than the CLI schema and is keyed by a millisecond
// timestamp id instead of the name; duplicate names are allowed here.
//
// Fields:
//   - ID: millisecond UTC timestamp assigned at creation; unique per store.
//   - Name: required, non-empty after trimming.
//   - Notes: free text, empty by default.
//   - JoinedCommunity / TookChallenge / SubmittedPaid / Customer: independent
//     stage flags.
//   - DateAdded: UTC ISO-8601 timestamp set at creation.
type WebContact struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Notes           string `json:"notes"`
	JoinedCommunity bool   `json:"joinedCommunity"`
	TookChallenge   bool   `json:"tookChallenge"`
	SubmittedPaid   bool   `json:"submittedPaid"`
	Customer        bool   `json:"customer"`
	DateAdded       string `json:"dateAdded"`
}

// FunnelDocument is the on-disk shape of the CLI store: a single JSON object
// holding all contacts in insertion order.
type FunnelDocument struct {
	Contacts []Contact `json:"contacts"`
}

// WebDocument is the on-disk shape of the web store, mirroring FunnelDocument
// for the web schema.
type WebDocument struct {
	Contacts []WebContact `json:"contacts"`
}

// FindContact returns a pointer to the contact whose folded name matches name,
// or nil when no contact matches. Matching ignores surrounding whitespace and
// letter case.
func (d *FunnelDocument) FindContact(name string) *Contact {
	want := FoldName(name)
	for i := range d.Contacts {
		if FoldName(d.Contacts[i].Name) == want {
			return &d.Contacts[i]
		}
	}
	return nil
}

// FindContact returns a pointer to the web contact with the given id, or nil
// when the id is unknown.
func (d *WebDocument) FindContact(id int64) *WebContact {
	for i := range d.Contacts {
		if d.Contacts[i].ID == id {
			return &d.Contacts[i]
		}
	}
	return nil
}

// Summary aggregates per-stage counts over a funnel store. Stage counts are
// independent of each other; their sum can exceed Total.
type Summary struct {
	Total            int
	Joined           int
	Challenge        int
	ContactSubmitted int
}

// FoldName normalizes a contact name for caseless comparison: surrounding
// whitespace is trimmed and the remainder is Unicode case folded. Folding is
// the caseless counterpart of lowercasing that also covers characters without
// a simple lowercase form.
func FoldName(name string) string {
	// cases.Caser is stateful; build one per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// UTCTimestamp returns the current time as an ISO-8601 UTC string with a "Z"
// suffix, the format both stores persist.
func UTCTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// UnixMilliNow returns the current UTC time in whole milliseconds, the basis
// for web contact ids.
func UnixMilliNow() int64 {
	return time.Now().UTC().UnixMilli()
}
