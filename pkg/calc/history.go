package calc

// HistoryEntry is one completed calculation.
type HistoryEntry struct {
	Equation string  `json:"equation"`
	Result   float64 `json:"result"`
}

// History is an append-only log capped at a maximum length; the oldest
// entries are dropped first.
type History struct {
	entries []HistoryEntry
	max     int
	version int
}

// NewHistory creates an empty log holding at most max entries.
func NewHistory(max int) *History {
	return &History{max: clamp(max, MinHistory, MaxHistory)}
}

// Add appends an entry and trims the log.
func (h *History) Add(equation string, result float64) {
	h.entries = append(h.entries, HistoryEntry{Equation: equation, Result: result})
	h.version++
	h.trim()
}

// SetMax changes the cap, trimming immediately.
func (h *History) SetMax(max int) {
	h.max = clamp(max, MinHistory, MaxHistory)
	h.trim()
}

// Replace swaps in a whole log, e.g. one read back from a file.
func (h *History) Replace(entries []HistoryEntry) {
	h.entries = append([]HistoryEntry(nil), entries...)
	h.version++
	h.trim()
}

func (h *History) trim() {
	if extra := len(h.entries) - h.max; extra > 0 {
		h.entries = append(h.entries[:0:0], h.entries[extra:]...)
	}
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Version increases every time the log changes.
func (h *History) Version() int { return h.version }

// Results returns the result column, oldest first.
func (h *History) Results() []float64 {
	out := make([]float64, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Result
	}
	return out
}
