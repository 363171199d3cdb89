package editor

import (
	"strings"
	"unicode/utf8"
)

type Role int

const (
	RoleNone Role = iota
	RoleTop
	RoleBottom
)

func (r Role) Placeholder() string {
	switch r {
	case RoleTop:
		return "TOP"
	case RoleBottom:
		return "BOTTOM"
	default:
		return ""
	}
}

func (r Role) String() string {
	switch r {
	case RoleTop:
		return "top"
	case RoleBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Caption is one of the two overlay text fields. It is tagged with its Role at
// construction so callbacks never need to compare field identity.
type Caption struct {
	Role      Role
	Text      []byte
	CaretByte int
	MaxRunes  int
}

func newCaption(role Role, maxRunes int) *Caption {
	c := &Caption{Role: role, MaxRunes: maxRunes}
	c.SetText(role.Placeholder())
	return c
}

func (c *Caption) String() string {
	return string(c.Text)
}

func (c *Caption) IsEmpty() bool {
	return len(c.Text) == 0
}

func (c *Caption) IsPlaceholder() bool {
	return string(c.Text) == c.Role.Placeholder()
}

// SetText replaces the caption text, capped at MaxRunes. The role's
// placeholder is never cut.
func (c *Caption) SetText(text string) {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if text != c.Role.Placeholder() {
		text = c.truncate(text)
	}
	c.Text = []byte(text)
	c.CaretByte = len(c.Text)
}

// InsertText inserts at the caret. Line breaks are flattened to spaces and
// other control runes are dropped; the caption never grows past MaxRunes.
func (c *Caption) InsertText(input string) {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7F || r == utf8.RuneError:
			continue
		default:
			b.WriteRune(r)
		}
	}
	insert := b.String()
	if insert == "" {
		return
	}
	if c.MaxRunes > 0 {
		room := c.MaxRunes - utf8.RuneCount(c.Text)
		if room <= 0 {
			return
		}
		insert = truncateRunes(insert, room)
	}
	c.CaretByte = clampToRuneBoundary(c.Text, c.CaretByte)
	out := make([]byte, 0, len(c.Text)+len(insert))
	out = append(out, c.Text[:c.CaretByte]...)
	out = append(out, insert...)
	out = append(out, c.Text[c.CaretByte:]...)
	c.Text = out
	c.CaretByte += len(insert)
}

func (c *Caption) Backspace() {
	c.CaretByte = clampToRuneBoundary(c.Text, c.CaretByte)
	if c.CaretByte == 0 {
		return
	}
	start := previousRuneBoundary(c.Text, c.CaretByte)
	c.Text = append(c.Text[:start], c.Text[c.CaretByte:]...)
	c.CaretByte = start
}

func (c *Caption) DeleteForward() {
	c.CaretByte = clampToRuneBoundary(c.Text, c.CaretByte)
	if c.CaretByte >= len(c.Text) {
		return
	}
	end := nextRuneBoundary(c.Text, c.CaretByte)
	c.Text = append(c.Text[:c.CaretByte], c.Text[end:]...)
}

func (c *Caption) MoveCaretLeft() {
	c.CaretByte = previousRuneBoundary(c.Text, c.CaretByte)
}

func (c *Caption) MoveCaretRight() {
	c.CaretByte = nextRuneBoundary(c.Text, c.CaretByte)
}

func (c *Caption) MoveCaretToStart() {
	c.CaretByte = 0
}

func (c *Caption) MoveCaretToEnd() {
	c.CaretByte = len(c.Text)
}

func (c *Caption) truncate(text string) string {
	if c.MaxRunes <= 0 {
		return text
	}
	return truncateRunes(text, c.MaxRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func clampToRuneBoundary(text []byte, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	if pos == len(text) || utf8.Valid(text[:pos]) {
		return pos
	}
	for pos > 0 && !utf8.Valid(text[:pos]) {
		pos--
	}
	return pos
}

func previousRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(text[:pos])
	if size <= 0 {
		size = 1
	}
	return pos - size
}

func nextRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRune(text[pos:])
	if size <= 0 {
		size = 1
	}
	return pos + size
}
