package editline

import (
	"bytes"
	"io"
)

// mockTerminal implements terminalInterface for testing and development.
//
// This implementation provides predictable, deterministic behavior for unit tests.
// It simulates a terminal without requiring a real device, so escape sequence
// decoding, redraws and raw mode bookkeeping can be verified in CI.
//
// Features:
//   - Chunked input: each chunk models bytes that arrived together. Non-blocking
//     reads only see the rest of the current chunk; a blocking read moves on to
//     the next one. This reproduces escape sequences split across reads.
//   - Captured output: everything written is kept in output for assertions
//   - Mode tracking: raw mode state and restore count for verification in tests
type mockTerminal struct {
	chunks       [][]byte     // Pre-configured input, grouped by arrival
	chunk        int          // Index of the chunk being consumed
	pos          int          // Position inside the current chunk
	output       bytes.Buffer // Everything written to the terminal
	columns      int          // Fixed terminal width
	notTerminal  bool         // Simulate redirected input
	rawMode      bool         // Track raw mode state for test verification
	restoreCount int          // Number of times raw mode was actually restored
	closed       int          // Number of Close calls
	readErr      error        // Returned by reads once the input is used up, instead of io.EOF
	writeErr     error        // Returned by Write when set
}

func newMockTerminal(chunks ...string) *mockTerminal {
	m := &mockTerminal{columns: 80}
	for _, c := range chunks {
		m.chunks = append(m.chunks, []byte(c))
	}
	return m
}

func (m *mockTerminal) IsTerminal() bool {
	return !m.notTerminal
}

func (m *mockTerminal) Fd() int {
	return -1
}

func (m *mockTerminal) SetRaw() (*rawModeGuard, error) {
	if m.notTerminal {
		return nil, ErrNotTerminal
	}
	if m.rawMode {
		return nil, ErrRawModeActive
	}
	m.rawMode = true
	return newRawModeGuard(func() error {
		m.rawMode = false
		m.restoreCount++
		return nil
	}), nil
}

func (m *mockTerminal) ReadByte() (byte, error) {
	for m.chunk < len(m.chunks) && m.pos >= len(m.chunks[m.chunk]) {
		m.chunk++
		m.pos = 0
	}
	if m.chunk >= len(m.chunks) {
		if m.readErr != nil {
			return 0, m.readErr
		}
		return 0, io.EOF
	}
	b := m.chunks[m.chunk][m.pos]
	m.pos++
	return b, nil
}

func (m *mockTerminal) ReadByteNonBlocking() (byte, bool, error) {
	if m.chunk >= len(m.chunks) || m.pos >= len(m.chunks[m.chunk]) {
		return 0, false, nil
	}
	b := m.chunks[m.chunk][m.pos]
	m.pos++
	return b, true, nil
}

func (m *mockTerminal) Columns() int {
	return m.columns
}

func (m *mockTerminal) Write(p []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.output.Write(p)
	return nil
}

func (m *mockTerminal) Close() error {
	m.closed++
	return nil
}
