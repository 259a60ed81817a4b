package session

// History is the append-only record of lines submitted during this session.
type History struct {
	entries []string
	cursor  int
}

// Append records a submitted line.
func (h *History) Append(line string) {
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the recorded lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the recall position. Nothing advances it yet: there is no
// up/down recall.
func (h *History) Cursor() int {
	return h.cursor
}

// State is the whole mutable state of one interactive session. It is owned
// by a single shell and never shared.
type State struct {
	Input   InputBuffer
	History History
}
