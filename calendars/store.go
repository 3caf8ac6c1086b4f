/*
store.go - Persistence interface for calendar definitions

PURPOSE:
  Defines the interface between calendar management and the database.
  A Record is the persisted form of a List: explicit dates plus annual
  rules, identified by a server-assigned id and a unique name. Save is
  an upsert keyed on the name so re-posting a definition replaces it.

IMPLEMENTATIONS:
  - store/sqlite: production store
  - api handlers sync saved records into the registry

SEE ALSO:
  - calendars.go: the domain Calendar the record materializes into
*/
package calendars

import (
	"context"
	"errors"
	"time"

	"github.com/warp/frequency-engine/moments"
)

// ErrNotFound reports a calendar id or name with no stored record.
var ErrNotFound = errors.New("calendar not found")

// DateEntry is one explicit holiday date in a record.
type DateEntry struct {
	Date  moments.Date
	Label string
}

// Record is a persisted calendar definition.
type Record struct {
	ID        string
	Name      string
	Dates     []DateEntry
	Rules     []Rule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Calendar materializes the stored definition.
func (rec Record) Calendar() *List {
	l := NewList(rec.Name)
	for _, e := range rec.Dates {
		l.AddDate(e.Date, e.Label)
	}
	for _, r := range rec.Rules {
		l.AddRule(r.Month, r.Day, r.Label)
	}
	return l
}

// Store persists calendar definitions.
type Store interface {
	// Save upserts by name: a record whose name exists replaces that
	// record (keeping its id), otherwise a new id is assigned. The
	// stored record is returned.
	Save(ctx context.Context, rec Record) (Record, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// GetByName returns the record with the given name, or ErrNotFound.
	GetByName(ctx context.Context, name string) (Record, error)

	// List returns all records ordered by name.
	List(ctx context.Context) ([]Record, error)

	// Delete removes the record with the given id, or ErrNotFound.
	Delete(ctx context.Context, id string) error
}
