package session

import "github.com/rivo/uniseg"

// InputBuffer holds the line currently being composed at the prompt.
type InputBuffer struct {
	Value string
}

// Append adds runes to the buffer. Line terminators are dropped so the
// buffer always holds a single line.
func (b *InputBuffer) Append(runes []rune) {
	for _, r := range runes {
		if r == '\n' || r == '\r' {
			continue
		}
		b.Value += string(r)
	}
}

// Backspace removes the last grapheme cluster.
func (b *InputBuffer) Backspace() {
	if len(b.Value) == 0 {
		return
	}
	last := 0
	gr := uniseg.NewGraphemes(b.Value)
	for gr.Next() {
		last, _ = gr.Positions()
	}
	b.Value = b.Value[:last]
}

// Clear resets the buffer.
func (b *InputBuffer) Clear() {
	b.Value = ""
}

// Empty reports whether nothing has been typed.
func (b *InputBuffer) Empty() bool {
	return b.Value == ""
}
