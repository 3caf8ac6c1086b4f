/*
registry.go - In-process calendar lookup

PURPOSE:
  Named calendars available to conversions, keyed by Calendar.Name().
  Registering under an existing name replaces the calendar, which is how
  the file refresher and the API keep definitions current. A package
  default registry serves the common single-process case; the options
  store's Calendar setting resolves against it.

SEE ALSO:
  - options: the process setting naming the active calendar
*/
package calendars

import (
	"sort"
	"sync"
)

// Registry is a mutable name -> Calendar table safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	cals map[string]Calendar
}

func NewRegistry() *Registry {
	return &Registry{cals: make(map[string]Calendar)}
}

// Register adds c under its name, replacing any previous calendar with
// the same name.
func (r *Registry) Register(c Calendar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cals[c.Name()] = c
}

// Get looks a calendar up by name.
func (r *Registry) Get(name string) (Calendar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cals[name]
	return c, ok
}

// Remove drops the named calendar. Removing an absent name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cals, name)
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.cals))
	for name := range r.cals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds c to the process-wide registry.
func Register(c Calendar) { defaultRegistry.Register(c) }

// Get looks c up in the process-wide registry.
func Get(name string) (Calendar, bool) { return defaultRegistry.Get(name) }

// Remove drops the named calendar from the process-wide registry.
func Remove(name string) { defaultRegistry.Remove(name) }

// Names lists the process-wide registry, sorted.
func Names() []string { return defaultRegistry.Names() }
