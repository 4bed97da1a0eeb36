package handler

import (
	"sync/atomic"

	"github.com/philipp01105/logshim/core"
)

// numLevels is the number of defined severity ranks.
const numLevels = int(core.FatalLevel) + 1

// Stats tracks handler statistics
type Stats struct {
	// filtered counts entries rejected by level or channel thresholds
	filtered [numLevels]atomic.Uint64
	// failed counts entries that could not be formatted or written
	failed atomic.Uint64
	// processed counts entries written successfully
	processed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementFiltered atomically increments the filtered counter for a level.
// Unknown levels are not counted.
func (s *Stats) IncrementFiltered(level core.Level) {
	if level.Valid() {
		s.filtered[level].Add(1)
	}
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	s.failed.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// GetFiltered returns the filtered count for a level
func (s *Stats) GetFiltered(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.filtered[level].Load()
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return s.failed.Load()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// GetTotalFiltered returns the total filtered across all levels
func (s *Stats) GetTotalFiltered() uint64 {
	var total uint64
	for i := range s.filtered {
		total += s.filtered[i].Load()
	}
	return total
}

// Merge adds the counters of snap, e.g. those of a handler being retired.
func (s *Stats) Merge(snap Snapshot) {
	for l, n := range snap.FilteredTotal {
		if l.Valid() {
			s.filtered[l].Add(n)
		}
	}
	s.failed.Add(snap.FailedTotal)
	s.processed.Add(snap.ProcessedTotal)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.filtered {
		s.filtered[i].Store(0)
	}
	s.failed.Store(0)
	s.processed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	FilteredTotal  map[core.Level]uint64
	FailedTotal    uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	filtered := make(map[core.Level]uint64, numLevels)
	for l := core.DebugLevel; l <= core.FatalLevel; l++ {
		filtered[l] = s.GetFiltered(l)
	}
	return Snapshot{
		FilteredTotal:  filtered,
		FailedTotal:    s.GetFailed(),
		ProcessedTotal: s.GetProcessed(),
	}
}
