package editline

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// bufferActions are the actions that only edit the line. Each is followed by
// a redraw.
var bufferActions = map[KeyAction]func(*lineBuffer){
	ActionBackspace:   func(b *lineBuffer) { b.backspace() },
	ActionDelete:      func(b *lineBuffer) { b.delete() },
	ActionClearLine:   (*lineBuffer).clear,
	ActionDeleteToEnd: (*lineBuffer).deleteToEnd,
	ActionDeleteWord:  (*lineBuffer).deleteWord,
	ActionMoveHome:    func(b *lineBuffer) { b.moveHome() },
	ActionMoveEnd:     func(b *lineBuffer) { b.moveEnd() },
	ActionMoveLeft:    func(b *lineBuffer) { b.moveLeft() },
	ActionMoveRight:   func(b *lineBuffer) { b.moveRight() },
	ActionTranspose:   func(b *lineBuffer) { b.transpose() },
}

// processKey handles one input byte. Bytes that start an escape sequence or
// a multi-byte UTF-8 character pull the rest of it from the terminal.
func (s *Session) processKey(b byte) (string, error) {
	action := s.config.KeyMap.GetAction(b)
	if action != ActionComplete {
		// Keep whatever candidate is on screen as the line
		s.completion = nil
	}

	var err error
	switch {
	case action != ActionNone:
		return s.dispatch(action)
	case b >= 32 && b < 127:
		err = s.insert(rune(b))
	case b >= 0x80:
		err = s.insertUTF8(b)
	}
	if err != nil {
		return "", err
	}
	return "", ErrMoreInput
}

// dispatch performs action. It returns the line when the action finished
// it, and ErrMoreInput when editing goes on.
func (s *Session) dispatch(action KeyAction) (string, error) {
	var err error
	switch action {
	case ActionAccept:
		return s.accept()
	case ActionInterrupt:
		s.active = false
		return "", ErrInterrupted
	case ActionEOFOrDelete:
		if s.buf.len() == 0 {
			s.active = false
			return "", ErrEOF
		}
		s.buf.delete()
		err = s.refresh()
	case ActionComplete:
		err = s.handleCompletion()
	case ActionHistoryPrev:
		err = s.navigateHistory(true)
	case ActionHistoryNext:
		err = s.navigateHistory(false)
	case ActionClearScreen:
		err = s.clearScreen()
	case ActionEscape:
		return s.handleEscape()
	default:
		edit, ok := bufferActions[action]
		if !ok {
			return "", ErrMoreInput
		}
		edit(s.buf)
		err = s.refresh()
	}
	if err != nil {
		return "", err
	}
	return "", ErrMoreInput
}

// handleEscape resolves the sequence following an ESC byte and performs its
// action. Unknown sequences are ignored.
func (s *Session) handleEscape() (string, error) {
	seq, ok, err := s.readEscapeSequence()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrMoreInput
	}

	action := s.config.KeyMap.GetSequenceAction(seq)
	if action == ActionNone || action == ActionEscape {
		return "", ErrMoreInput
	}
	return s.dispatch(action)
}

// readEscapeSequence reads the bytes after ESC without blocking: two bytes,
// and a third when the second is a digit, as in ESC [ 3 ~. It reports false
// when the bytes needed have not arrived yet; the bytes read so far are
// dropped.
func (s *Session) readEscapeSequence() (string, bool, error) {
	var seq [3]byte
	n := 2
	for i := 0; i < n; i++ {
		b, ok, err := s.term.ReadByteNonBlocking()
		if err != nil {
			return "", false, fmt.Errorf("failed to read escape sequence: %w", err)
		}
		if !ok {
			return "", false, nil
		}
		seq[i] = b
		if i == 1 && seq[0] == '[' && b >= '0' && b <= '9' {
			n = 3
		}
	}
	return string(seq[:n]), true, nil
}

// insert adds r at the cursor, or sounds the bell when the line is full.
func (s *Session) insert(r rune) error {
	if !s.buf.insert(r) {
		return s.beep()
	}
	return s.refresh()
}

// insertUTF8 reads the continuation bytes announced by lead and inserts the
// decoded character. Malformed input sounds the bell and changes nothing.
func (s *Session) insertUTF8(lead byte) error {
	var need int
	switch {
	case lead&0xe0 == 0xc0:
		need = 1
	case lead&0xf0 == 0xe0:
		need = 2
	case lead&0xf8 == 0xf0:
		need = 3
	default:
		return s.beep()
	}

	seq := []byte{lead}
	for i := 0; i < need; i++ {
		b, err := s.term.ReadByte()
		if errors.Is(err, io.EOF) {
			return s.beep()
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if b&0xc0 != 0x80 {
			return s.beep()
		}
		seq = append(seq, b)
	}

	r, size := utf8.DecodeRune(seq)
	if r == utf8.RuneError || size != len(seq) {
		return s.beep()
	}
	return s.insert(r)
}
