package editline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
)

// unsupportedTerms lists $TERM values of terminals that cannot handle the
// escape sequences used for editing.
var unsupportedTerms = []string{"dumb", "cons25", "emacs"}

func isUnsupportedTerm(name string) bool {
	return slices.ContainsFunc(unsupportedTerms, func(t string) bool {
		return strings.EqualFold(t, name)
	})
}

var (
	stdinOnce   sync.Once
	stdinReader *bufio.Reader
)

// stdin returns a buffered reader on standard input shared by all plain
// reads, so bytes buffered by one call are seen by the next.
func stdin() *bufio.Reader {
	stdinOnce.Do(func() {
		stdinReader = bufio.NewReader(os.Stdin)
	})
	return stdinReader
}

// ReadLine shows prompt and returns the line the user typed.
//
// This is the blocking convenience around Start, Feed and Stop. When standard
// input is not a terminal the line is read as plain text without a prompt.
// When $TERM names a terminal that cannot handle escape sequences, the
// prompt is printed with its escape codes removed and the line is read as
// plain text.
//
// The returned line has no trailing newline. ErrEOF is returned at end of
// input and ErrInterrupted when the user pressed Ctrl+C.
//
// Example:
//
//	for {
//		line, err := editline.ReadLine("hello> ")
//		if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
//			break
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("echo: %q\n", line)
//	}
func ReadLine(prompt string, opts ...Option) (string, error) {
	if !termIsTerminal(int(os.Stdin.Fd())) {
		return readPlainLine(stdin())
	}
	if isUnsupportedTerm(os.Getenv("TERM")) {
		fmt.Fprint(colorable.NewNonColorable(os.Stdout), prompt)
		return readPlainLine(stdin())
	}

	s, err := Start(os.Stdin, os.Stdout, prompt, opts...)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", err)
		}
	}()
	return s.run()
}

// readPlainLine reads one line without editing, as when input is a pipe or
// file.
func readPlainLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", ErrEOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// keyNames names the bytes produced by the keys the editor handles.
var keyNames = map[byte]string{
	0x01: "ctrl-a",
	0x02: "ctrl-b",
	0x03: "ctrl-c",
	0x04: "ctrl-d",
	0x05: "ctrl-e",
	0x06: "ctrl-f",
	0x08: "ctrl-h",
	0x09: "tab",
	0x0b: "ctrl-k",
	0x0c: "ctrl-l",
	0x0d: "enter",
	0x0e: "ctrl-n",
	0x10: "ctrl-p",
	0x14: "ctrl-t",
	0x15: "ctrl-u",
	0x17: "ctrl-w",
	0x1b: "esc",
	0x7f: "backspace",
}

// PrintKeyCodes puts in in raw mode and prints every byte received, with
// its name where known, until the user types "quit". It helps finding out
// what a terminal sends for a key.
func PrintKeyCodes(in, out *os.File) error {
	t, err := newRealTerminal(in, out)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "editline key codes debugging mode.")
	fmt.Fprintln(out, "Press keys to see scan codes. Type 'quit' to exit.")
	err = WithRawMode(t.Fd(), func() error {
		return printKeyCodes(t)
	})
	fmt.Fprintln(out)
	return err
}

func printKeyCodes(rw byteReadWriter) error {
	var last [4]byte
	for {
		b, err := rw.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		copy(last[:], last[1:])
		last[3] = b

		if err := rw.Write([]byte(formatKeyCode(b) + "\r\n")); err != nil {
			return err
		}
		if string(last[:]) == "quit" {
			return nil
		}
	}
}

// formatKeyCode renders one byte as 'c'  0xNN (name).
func formatKeyCode(b byte) string {
	c := byte('?')
	if b >= 32 && b < 127 {
		c = b
	}
	s := fmt.Sprintf("'%c'  %#04x", c, b)
	if name, ok := keyNames[b]; ok {
		s += " (" + name + ")"
	}
	return s
}
