package media

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/metrics"
)

const (
	removeAttempts = 3
	removeDelay    = 500 * time.Millisecond
)

// Tracker owns the scratch files created during one request and removes them
// exactly once when the request's scope exits, on every path. Removal
// tolerates transient file locks by retrying; a removal that still fails is
// logged and never escalated.
type Tracker struct {
	log   zerolog.Logger
	sleep func(time.Duration)

	mu    sync.Mutex
	paths []string
}

func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{
		log:   log.With().Str("component", "cleanup").Logger(),
		sleep: time.Sleep,
	}
}

// Add registers a scratch file for removal at scope exit.
func (t *Tracker) Add(f *ScratchFile) {
	if f == nil {
		return
	}
	t.mu.Lock()
	t.paths = append(t.paths, f.Path)
	t.mu.Unlock()
}

// CleanupAll removes every tracked file. Safe to call from defer; a second
// call is a no-op, so success and error paths can both run it.
func (t *Tracker) CleanupAll() {
	t.mu.Lock()
	paths := t.paths
	t.paths = nil
	t.mu.Unlock()

	for _, path := range paths {
		t.removeWithRetry(path)
	}
}

func (t *Tracker) removeWithRetry(path string) {
	for attempt := 1; attempt <= removeAttempts; attempt++ {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return
		}
		if attempt < removeAttempts {
			t.sleep(removeDelay)
			continue
		}
		t.log.Warn().Err(err).Str("path", path).Msg("could not remove scratch file")
		metrics.CleanupFailuresTotal.Inc()
	}
}
