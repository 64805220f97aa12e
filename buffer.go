package editline

// DefaultMaxLineLength is the default capacity of the edited line, counted in
// characters. One slot is reserved, so at most DefaultMaxLineLength-1
// characters can be typed.
const DefaultMaxLineLength = 4096

// lineBuffer holds the line being edited and the cursor position.
//
// The cursor is an index into chars and always satisfies 0 <= pos <= len(chars).
// lineBuffer performs no I/O; the session redraws after every mutation.
type lineBuffer struct {
	chars  []rune
	pos    int
	maxLen int
}

func newLineBuffer(maxLen int) *lineBuffer {
	if maxLen <= 1 {
		maxLen = DefaultMaxLineLength
	}
	return &lineBuffer{
		chars:  make([]rune, 0, 64),
		maxLen: maxLen,
	}
}

// insert puts r at the cursor and advances the cursor.
// It reports false without modifying the buffer when the line is full.
func (b *lineBuffer) insert(r rune) bool {
	if len(b.chars) >= b.maxLen-1 {
		return false
	}
	b.chars = append(b.chars, 0)
	copy(b.chars[b.pos+1:], b.chars[b.pos:])
	b.chars[b.pos] = r
	b.pos++
	return true
}

// delete removes the character under the cursor.
func (b *lineBuffer) delete() bool {
	if b.pos >= len(b.chars) {
		return false
	}
	b.chars = append(b.chars[:b.pos], b.chars[b.pos+1:]...)
	return true
}

// backspace removes the character before the cursor.
func (b *lineBuffer) backspace() bool {
	if b.pos == 0 {
		return false
	}
	b.pos--
	b.chars = append(b.chars[:b.pos], b.chars[b.pos+1:]...)
	return true
}

func (b *lineBuffer) moveLeft() bool {
	if b.pos == 0 {
		return false
	}
	b.pos--
	return true
}

func (b *lineBuffer) moveRight() bool {
	if b.pos >= len(b.chars) {
		return false
	}
	b.pos++
	return true
}

func (b *lineBuffer) moveHome() bool {
	moved := b.pos != 0
	b.pos = 0
	return moved
}

func (b *lineBuffer) moveEnd() bool {
	moved := b.pos != len(b.chars)
	b.pos = len(b.chars)
	return moved
}

// deleteToEnd truncates the line at the cursor.
func (b *lineBuffer) deleteToEnd() {
	b.chars = b.chars[:b.pos]
}

// deleteWord removes the word before the cursor: first the run of spaces
// directly before it, then the run of non-space characters.
func (b *lineBuffer) deleteWord() {
	end := b.pos
	for b.pos > 0 && b.chars[b.pos-1] == ' ' {
		b.pos--
	}
	for b.pos > 0 && b.chars[b.pos-1] != ' ' {
		b.pos--
	}
	b.chars = append(b.chars[:b.pos], b.chars[end:]...)
}

// transpose swaps the characters around the cursor. At the end of the line
// the last two characters are swapped and the cursor stays; elsewhere the
// character before the cursor is swapped with the one under it and the
// cursor advances.
func (b *lineBuffer) transpose() bool {
	if b.pos == 0 || len(b.chars) < 2 {
		return false
	}
	if b.pos == len(b.chars) {
		b.chars[b.pos-2], b.chars[b.pos-1] = b.chars[b.pos-1], b.chars[b.pos-2]
		return true
	}
	b.chars[b.pos-1], b.chars[b.pos] = b.chars[b.pos], b.chars[b.pos-1]
	b.pos++
	return true
}

func (b *lineBuffer) clear() {
	b.chars = b.chars[:0]
	b.pos = 0
}

// set replaces the whole line with s, truncated to capacity, and moves the
// cursor to the end.
func (b *lineBuffer) set(s string) {
	b.chars = b.chars[:0]
	for _, r := range s {
		if len(b.chars) >= b.maxLen-1 {
			break
		}
		b.chars = append(b.chars, r)
	}
	b.pos = len(b.chars)
}

func (b *lineBuffer) len() int {
	return len(b.chars)
}

func (b *lineBuffer) String() string {
	return string(b.chars)
}
