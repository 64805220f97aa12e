package editline

// Completer produces completion candidates for a line.
//
// Each candidate is a whole replacement line, not a suffix. When the user
// presses Tab repeatedly the session calls Complete again with the line as it
// was before the first Tab, and shows the next candidate of the result.
type Completer interface {
	Complete(line string) []string
}

// CompleterFunc adapts an ordinary function to the Completer interface.
//
// Example:
//
//	completer := editline.CompleterFunc(func(line string) []string {
//		if strings.HasPrefix("hello", line) {
//			return []string{"hello", "hello there"}
//		}
//		return nil
//	})
type CompleterFunc func(line string) []string

// Complete calls f(line).
func (f CompleterFunc) Complete(line string) []string {
	return f(line)
}

// Hinter produces the hint shown to the right of the line while typing.
type Hinter interface {
	Hint(line string) (Hint, bool)
}

// HinterFunc adapts an ordinary function to the Hinter interface.
//
// Example:
//
//	hinter := editline.HinterFunc(func(line string) (editline.Hint, bool) {
//		if line == "git remote add" {
//			return editline.Hint{Text: " <name> <url>", Color: editline.ColorGray}, true
//		}
//		return editline.Hint{}, false
//	})
type HinterFunc func(line string) (Hint, bool)

// Hint calls f(line).
func (f HinterFunc) Hint(line string) (Hint, bool) {
	return f(line)
}

// completionState remembers the line the user typed before the first Tab and
// which candidate is on screen.
type completionState struct {
	original string
	index    int
}

// handleCompletion runs one Tab press: starts cycling or advances to the
// next candidate. Without a completer Tab does nothing.
func (s *Session) handleCompletion() error {
	if s.config.Completer == nil {
		return nil
	}

	line := s.buf.String()
	if s.completion != nil {
		line = s.completion.original
	}

	candidates := s.config.Completer.Complete(line)
	if len(candidates) == 0 {
		s.completion = nil
		return s.beep()
	}

	if s.completion == nil {
		s.completion = &completionState{original: line}
	} else {
		s.completion.index = (s.completion.index + 1) % len(candidates)
	}
	s.buf.set(candidates[s.completion.index])
	return s.refresh()
}
