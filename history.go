package editline

import "sync"

// DefaultHistoryMaxLen is the number of entries a History keeps when no
// other limit is given.
const DefaultHistoryMaxLen = 100

// History is a bounded list of previously accepted lines, oldest first.
//
// A History is meant to live for the whole process and be shared by every
// Session the application starts, so lines entered in one prompt can be
// recalled in the next. Sessions never add to it on their own: call Add with
// the lines you want to remember.
//
// History is safe for concurrent use. This matters when Watch reloads the
// entries from disk while a session is browsing them.
//
// Example:
//
//	history := editline.NewHistory(500)
//	_ = history.Load("~/.myapp_history")
//	defer history.Save("~/.myapp_history")
//
//	for {
//		line, err := editline.ReadLine("> ", editline.WithHistory(history))
//		if err != nil {
//			break
//		}
//		history.Add(line)
//	}
type History struct {
	mu      sync.RWMutex
	maxLen  int
	entries []string
}

// NewHistory creates an empty history holding at most maxLen entries.
// A maxLen below 1 selects DefaultHistoryMaxLen.
func NewHistory(maxLen int) *History {
	if maxLen < 1 {
		maxLen = DefaultHistoryMaxLen
	}
	return &History{
		maxLen:  maxLen,
		entries: make([]string, 0),
	}
}

// Add appends line to the history.
//
// Empty lines and a line equal to the most recent entry are ignored. When the
// history is full the oldest entry is dropped. Add reports whether the line
// was stored.
func (h *History) Add(line string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addLocked(line)
}

func (h *History) addLocked(line string) bool {
	if line == "" {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}
	if len(h.entries) >= h.maxLen {
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.entries = append(h.entries, line)
	return true
}

// SetMaxLen changes the capacity of the history. If the history currently
// holds more than n entries, only the newest n are kept.
// It reports false and changes nothing when n is below 1.
func (h *History) SetMaxLen(n int) bool {
	if n < 1 {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxLen = n
	if extra := len(h.entries) - n; extra > 0 {
		h.entries = append(h.entries[:0], h.entries[extra:]...)
	}
	return true
}

// MaxLen returns the capacity of the history.
func (h *History) MaxLen() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.maxLen
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string{}, h.entries...)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
}

// recent returns the n-th most recent entry: 1 is the newest.
func (h *History) recent(n int) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n < 1 || n > len(h.entries) {
		return "", false
	}
	return h.entries[len(h.entries)-n], true
}

// replace swaps in a freshly loaded set of entries, keeping the capacity.
func (h *History) replace(other *History) {
	entries := other.Entries()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
	for _, e := range entries {
		h.addLocked(e)
	}
}
