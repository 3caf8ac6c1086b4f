/*
scheduler.go - Background calendar refresher

PURPOSE:
  Periodically re-reads a directory of YAML calendar definitions and
  registers them, so operators can drop or edit calendar files without
  restarting the server.

DESIGN:
  - Runs a background goroutine with configurable refresh interval
  - Re-registers every loaded calendar (same-name replacement)
  - A directory that fails to read is logged and skipped; the previous
    registrations stay in effect

CONFIGURATION:
  - Dir:      Directory of .yaml/.yml calendar files
  - Interval: How often to re-read (default: 1 hour)
  - Enabled:  Whether the refresher is active (default: true)

USAGE:
  refresher := NewCalendarRefresher("./calendars", registry)
  refresher.Start()
  // ... later
  refresher.Stop()

SEE ALSO:
  - calendars/yaml.go: LoadDir, the file reader
  - cmd/server/main.go: wiring and lifecycle
*/
package api

import (
	"log"
	"sync"
	"time"

	"github.com/warp/frequency-engine/calendars"
)

// CalendarRefresher keeps a registry in sync with a directory of YAML
// calendar definitions.
type CalendarRefresher struct {
	Dir      string
	Registry *calendars.Registry
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCalendarRefresher creates a refresher for the given directory.
func NewCalendarRefresher(dir string, registry *calendars.Registry) *CalendarRefresher {
	return &CalendarRefresher{
		Dir:      dir,
		Registry: registry,
		Interval: 1 * time.Hour,
		Enabled:  true,
		stop:     make(chan bool),
	}
}

// Start begins the refresher.
func (cr *CalendarRefresher) Start() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.Enabled {
		log.Println("[Refresher] Disabled, not starting")
		return
	}

	cr.ticker = time.NewTicker(cr.Interval)
	cr.wg.Add(1)

	go cr.run()

	log.Printf("[Refresher] Started for %s with interval: %v", cr.Dir, cr.Interval)
}

// Stop stops the refresher.
func (cr *CalendarRefresher) Stop() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.ticker != nil {
		cr.ticker.Stop()
		close(cr.stop)
		cr.wg.Wait()
		log.Println("[Refresher] Stopped")
	}
}

func (cr *CalendarRefresher) run() {
	defer cr.wg.Done()

	// Load immediately on start
	cr.Refresh()

	for {
		select {
		case <-cr.ticker.C:
			cr.Refresh()
		case <-cr.stop:
			return
		}
	}
}

// Refresh re-reads the directory once, registering every definition it
// holds. Returns the number of calendars registered.
func (cr *CalendarRefresher) Refresh() int {
	lists, err := calendars.LoadDir(cr.Dir)
	if err != nil {
		log.Printf("[Refresher] Failed to read %s: %v", cr.Dir, err)
		return 0
	}

	for _, l := range lists {
		cr.Registry.Register(l)
	}
	log.Printf("[Refresher] Registered %d calendar(s) from %s", len(lists), cr.Dir)
	return len(lists)
}
