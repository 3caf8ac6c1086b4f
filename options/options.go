/*
options.go - Process-wide conversion defaults

PURPOSE:
  Holds the mutable settings conversions fall back to when a call does not
  carry an explicit value: whether business-day alignment and aggregation
  skip holidays, whether aggregations skip NaN samples, and which
  registered calendar supplies the holiday mask. Explicit per-call
  settings always win; the store only fills gaps.

CONCURRENCY:
  RWMutex-guarded. A conversion reads one Snapshot at its start and never
  caches it across calls, so a settings change applies to the next call.

SEE ALSO:
  - calendars: resolves the Calendar setting to a holiday mask
*/
package options

import "sync"

// Options is one consistent view of the process settings.
type Options struct {
	// SkipHolidays masks registered holidays out of business-day
	// alignment probes and aggregation spans.
	SkipHolidays bool

	// SkipNaNs drops NaN samples from aggregations instead of letting
	// them poison the result.
	SkipNaNs bool

	// Calendar names the registered calendar used as the holiday mask
	// when SkipHolidays is on. Empty means no calendar.
	Calendar string
}

// Store is a mutable options holder safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	opts Options
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current settings as one consistent value.
func (s *Store) Snapshot() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Replace swaps in a complete new settings value.
func (s *Store) Replace(o Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = o
}

// Reset restores the zero settings.
func (s *Store) Reset() {
	s.Replace(Options{})
}

func (s *Store) SetSkipHolidays(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SkipHolidays = on
}

func (s *Store) SetSkipNaNs(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SkipNaNs = on
}

func (s *Store) SetCalendar(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Calendar = name
}

var defaultStore = NewStore()

// Default returns the process-wide store.
func Default() *Store {
	return defaultStore
}
