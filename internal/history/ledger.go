package history

import (
	"sync"

	"github.com/ytget/yt-grabber/internal/model"
)

// DefaultCapacity is how many results the ledger keeps.
const DefaultCapacity = 10

// Ledger is a bounded, insertion-ordered log of results. When full, the
// oldest entry is dropped. It is safe for concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	entries  []model.DownloadResult
	capacity int
}

// NewLedger creates a ledger holding at most capacity results. A
// non-positive capacity means DefaultCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		entries:  make([]model.DownloadResult, 0, capacity),
		capacity: capacity,
	}
}

// Append adds result at the tail and evicts from the head beyond capacity.
func (l *Ledger) Append(result model.DownloadResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, result)
	if over := len(l.entries) - l.capacity; over > 0 {
		// Copy down instead of reslicing so the backing array stays bounded.
		n := copy(l.entries, l.entries[over:])
		clear(l.entries[n:])
		l.entries = l.entries[:n]
	}
}

// List returns a copy of the entries, oldest first.
func (l *Ledger) List() []model.DownloadResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.DownloadResult, len(l.entries))
	copy(out, l.entries)
	return out
}

// Newest returns a copy of the entries, most recent first.
func (l *Ledger) Newest() []model.DownloadResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.DownloadResult, len(l.entries))
	for i, r := range l.entries {
		out[len(l.entries)-1-i] = r
	}
	return out
}

// Last returns the most recent result.
func (l *Ledger) Last() (model.DownloadResult, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return model.DownloadResult{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of stored results
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of stored results
func (l *Ledger) Capacity() int {
	return l.capacity
}
