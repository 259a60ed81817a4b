package keys

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/input"
)

// keySet lists the key reported for each modifier combination.
type keySet struct {
	plain, shift, ctrl, ctrlShift tea.KeyType
}

func same(t tea.KeyType) keySet {
	return keySet{t, t, t, t}
}

func (ks keySet) key(mod input.KeyMod) tea.KeyType {
	shift, ctrl := mod.Contains(input.ModShift), mod.Contains(input.ModCtrl)
	switch {
	case ctrl && shift:
		return ks.ctrlShift
	case ctrl:
		return ks.ctrl
	case shift:
		return ks.shift
	}
	return ks.plain
}

var specialKeys = map[rune]keySet{
	input.KeyEnter:     same(tea.KeyEnter),
	input.KeyKpEnter:   same(tea.KeyEnter),
	input.KeyTab:       {tea.KeyTab, tea.KeyShiftTab, tea.KeyTab, tea.KeyShiftTab},
	input.KeyBackspace: same(tea.KeyBackspace),
	input.KeyEscape:    same(tea.KeyEsc),
	input.KeyUp:        {tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp},
	input.KeyDown:      {tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown},
	input.KeyRight:     {tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight, tea.KeyCtrlShiftRight},
	input.KeyLeft:      {tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft, tea.KeyCtrlShiftLeft},
	input.KeyHome:      {tea.KeyHome, tea.KeyShiftHome, tea.KeyCtrlHome, tea.KeyCtrlShiftHome},
	input.KeyEnd:       {tea.KeyEnd, tea.KeyShiftEnd, tea.KeyCtrlEnd, tea.KeyCtrlShiftEnd},
	input.KeyInsert:    same(tea.KeyInsert),
	input.KeyDelete:    same(tea.KeyDelete),
	input.KeyPgUp:      {tea.KeyPgUp, tea.KeyPgUp, tea.KeyCtrlPgUp, tea.KeyCtrlPgUp},
	input.KeyPgDown:    {tea.KeyPgDown, tea.KeyPgDown, tea.KeyCtrlPgDown, tea.KeyCtrlPgDown},
	input.KeyF1:        same(tea.KeyF1),
	input.KeyF2:        same(tea.KeyF2),
	input.KeyF3:        same(tea.KeyF3),
	input.KeyF4:        same(tea.KeyF4),
	input.KeyF5:        same(tea.KeyF5),
	input.KeyF6:        same(tea.KeyF6),
	input.KeyF7:        same(tea.KeyF7),
	input.KeyF8:        same(tea.KeyF8),
	input.KeyF9:        same(tea.KeyF9),
	input.KeyF10:       same(tea.KeyF10),
	input.KeyF11:       same(tea.KeyF11),
	input.KeyF12:       same(tea.KeyF12),
	input.KeyF13:       same(tea.KeyF13),
	input.KeyF14:       same(tea.KeyF14),
	input.KeyF15:       same(tea.KeyF15),
	input.KeyF16:       same(tea.KeyF16),
	input.KeyF17:       same(tea.KeyF17),
	input.KeyF18:       same(tea.KeyF18),
	input.KeyF19:       same(tea.KeyF19),
	input.KeyF20:       same(tea.KeyF20),
}

// keyMsg translates a parsed input event. Only key presses with a bubbletea
// counterpart translate; everything else reports false.
func keyMsg(ev input.Event) (tea.KeyMsg, bool) {
	kp, ok := ev.(input.KeyPressEvent)
	if !ok {
		return tea.KeyMsg{}, false
	}
	k := kp.Key()
	alt := k.Mod.Contains(input.ModAlt)
	ctrl := k.Mod.Contains(input.ModCtrl)

	switch {
	case k.Code == input.KeyEscape:
		// Two ESC bytes in one read come back as alt+esc.
		return tea.KeyMsg{Type: tea.KeyEsc}, true
	case k.Code == 'j' && k.Mod == input.ModCtrl:
		// A bare line feed.
		return tea.KeyMsg{Type: tea.KeyEnter}, true
	case k.Text == " " || (k.Code == input.KeySpace && !ctrl):
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}, true
	case k.Text != "" && !ctrl:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k.Text), Alt: alt}, true
	}

	if ks, ok := specialKeys[k.Code]; ok {
		return tea.KeyMsg{Type: ks.key(k.Mod), Alt: alt}, true
	}
	if ctrl {
		if t, ok := controlKey(k.Code); ok {
			return tea.KeyMsg{Type: t, Alt: alt}, true
		}
		return tea.KeyMsg{}, false
	}
	// Alt clears the text of a printable key; the code is left.
	if unicode.IsPrint(k.Code) {
		r := k.Code
		if k.Mod.Contains(input.ModShift) && k.ShiftedCode != 0 {
			r = k.ShiftedCode
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}, true
	}
	return tea.KeyMsg{}, false
}

// controlKey maps ctrl+code onto the C0 control bubbletea names it after.
func controlKey(code rune) (tea.KeyType, bool) {
	switch {
	case code == input.KeySpace:
		return tea.KeyCtrlAt, true
	case code >= 'a' && code <= 'z':
		return tea.KeyType(code - 0x60), true
	case code >= '@' && code <= '_':
		return tea.KeyType(code - 0x40), true
	}
	return 0, false
}
