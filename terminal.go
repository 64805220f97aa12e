package editline

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// defaultColumns is used when the terminal width cannot be determined.
const defaultColumns = 80

// terminalInterface abstracts the character device a session edits on.
//
// This interface separates the editing engine from descriptor-level I/O,
// allowing the session to run against a real terminal (raw fds driven
// through golang.org/x/term and golang.org/x/sys/unix) or against a scripted
// mock in tests.
//
// Implementations:
//   - realTerminal: POSIX descriptors, optionally a /dev/tty handle from go-tty
//   - mockTerminal: deterministic input chunks and captured output for testing
type terminalInterface interface {
	IsTerminal() bool                         // Whether input is an interactive terminal
	Fd() int                                  // Input descriptor, for callers' own event loops
	SetRaw() (*rawModeGuard, error)           // Enter raw mode; the guard restores it
	ReadByte() (byte, error)                  // Blocking single byte read; io.EOF at end of input
	ReadByteNonBlocking() (byte, bool, error) // Single byte if one is already available
	Columns() int                             // Current width in columns, never below 1
	Write(p []byte) error                     // Write all of p
	Close() error                             // Release descriptors owned by the terminal
}

var (
	// ErrNotTerminal is returned by SetRaw when the input is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrRawModeActive is returned by SetRaw when raw mode is already enabled.
	ErrRawModeActive = errors.New("raw mode already enabled")
)

// Escape sequences written to the terminal.
const (
	seqCursorPosition = "\x1b[6n"
	seqMoveToMargin   = "\x1b[999C"
	seqEraseToEOL     = "\x1b[0K"
	seqEraseLine      = "\x1b[2K"
	seqClearScreen    = "\x1b[H\x1b[2J"
	seqBell           = "\x07"
)

// byteReadWriter is the part of a terminal the column probe needs.
type byteReadWriter interface {
	ReadByte() (byte, error)
	Write(p []byte) error
}

// queryCursorPosition asks the terminal for the cursor position with
// ESC [ 6 n and parses the ESC [ row ; col R reply.
func queryCursorPosition(rw byteReadWriter) (row, col int, err error) {
	if err := rw.Write([]byte(seqCursorPosition)); err != nil {
		return 0, 0, err
	}

	reply := make([]byte, 0, 32)
	for len(reply) < cap(reply)-1 {
		b, err := rw.ReadByte()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read cursor position: %w", err)
		}
		reply = append(reply, b)
		if b == 'R' {
			break
		}
	}
	return parseCursorPosition(reply)
}

// parseCursorPosition parses a cursor position report of the form
// ESC [ row ; col R.
func parseCursorPosition(reply []byte) (row, col int, err error) {
	if len(reply) < 6 || reply[0] != '\x1b' || reply[1] != '[' || reply[len(reply)-1] != 'R' {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", reply)
	}
	rowPart, colPart, ok := bytes.Cut(reply[2:len(reply)-1], []byte{';'})
	if !ok {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", reply)
	}
	if row, err = strconv.Atoi(string(rowPart)); err != nil {
		return 0, 0, fmt.Errorf("invalid row in cursor position report: %w", err)
	}
	if col, err = strconv.Atoi(string(colPart)); err != nil {
		return 0, 0, fmt.Errorf("invalid column in cursor position report: %w", err)
	}
	return row, col, nil
}

// probeColumns measures the terminal width by moving the cursor to the right
// margin and asking where it ended up. The original cursor position is
// restored afterwards.
func probeColumns(rw byteReadWriter) (int, error) {
	origRow, origCol, err := queryCursorPosition(rw)
	if err != nil {
		return 0, err
	}
	if err := rw.Write([]byte(seqMoveToMargin)); err != nil {
		return 0, err
	}
	_, cols, err := queryCursorPosition(rw)
	if err != nil {
		return 0, err
	}
	if origRow != 0 || origCol != 0 {
		if err := rw.Write(fmt.Appendf(nil, "\x1b[%d;%dH", origRow, origCol)); err != nil {
			return 0, err
		}
	}
	if cols < 1 {
		return 0, fmt.Errorf("terminal reported %d columns", cols)
	}
	return cols, nil
}
