// Package editline provides a small line editor for terminal programs.
//
// It puts the terminal in raw mode, reads keystrokes one byte at a time and
// redraws the prompt and the line as the user types, using a handful of
// ANSI/VT escape sequences instead of a terminal capability database.
//
// Key Features:
//
//   - Emacs style editing keys (Ctrl+A, Ctrl+E, Ctrl+W, Ctrl+T, ...)
//   - Single-line mode that scrolls long lines, or multi-line mode that wraps them
//   - Tab completion that cycles through candidates
//   - Hints drawn to the right of the line
//   - History browsing, with loading and saving to a file
//   - Masked input for passwords
//   - Plain line reads when input is not a terminal or the terminal is too dumb
//   - A feed-driven session API for programs with their own event loop
//
// Quick Start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/nao1215/editline"
//	)
//
//	func main() {
//		line, err := editline.ReadLine("Enter command: ")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("You entered: %s\n", line)
//	}
//
// Completion, Hints and History:
//
//	history := editline.NewHistory(100)
//	if err := history.Load(editline.DefaultHistoryFile()); err != nil {
//		log.Fatal(err)
//	}
//
//	line, err := editline.ReadLine("$ ",
//		editline.WithCompleter(editline.NewFuzzyCompleter([]string{
//			"git status", "git commit", "docker run",
//		})),
//		editline.WithHinter(editline.HinterFunc(func(line string) (editline.Hint, bool) {
//			if line == "git commit" {
//				return editline.Hint{Text: " -m <message>", Color: editline.ColorGray}, true
//			}
//			return editline.Hint{}, false
//		})),
//		editline.WithHistory(history),
//	)
//	if err == nil {
//		history.Add(line)
//		_ = history.Save(editline.DefaultHistoryFile())
//	}
//
// Event Loop Integration:
//
// Start returns a Session that reads one key per Feed call. Call Feed when
// the descriptor returned by Fd is readable; ErrMoreInput means the line is
// not finished yet. Hide and Show let the program print its own output while
// a line is being edited.
//
//	s, err := editline.Start(os.Stdin, os.Stdout, "> ")
//	if errors.Is(err, editline.ErrUnsupportedTerminal) {
//		return readPlain()
//	}
//	if err != nil {
//		return err
//	}
//	defer s.Stop()
//
// Key Bindings:
//
//   - Enter: Accept the line
//   - Ctrl+C: Return ErrInterrupted
//   - Ctrl+D: Return ErrEOF on an empty line, delete character otherwise
//   - Tab: Complete, press again for the next candidate
//   - Left/Right, Ctrl+B/Ctrl+F: Move cursor
//   - Home/End, Ctrl+A/Ctrl+E: Move to beginning/end of line
//   - Up/Down, Ctrl+P/Ctrl+N: Browse history
//   - Backspace, Ctrl+H: Delete character backwards
//   - Delete: Delete character under cursor
//   - Ctrl+U: Delete entire line
//   - Ctrl+K: Delete from cursor to end of line
//   - Ctrl+W: Delete word backwards
//   - Ctrl+T: Swap characters around the cursor
//   - Ctrl+L: Clear screen
//
// Bindings can be changed with a custom KeyMap, see NewDefaultKeyMap.
//
// Terminal State:
//
// Raw mode is always undone: Session.Stop restores the terminal once no
// matter how often it is called, and WithRawMode restores it even when the
// wrapped function panics.
package editline
