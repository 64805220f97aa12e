//go:build !unix

package editline

import "os"

// The engine drives POSIX descriptors directly; other platforms get the
// plain line-read fallback from ReadLine.
func newRealTerminal(_, _ *os.File) (terminalInterface, error) {
	return nil, ErrUnsupportedTerminal
}

func openTTY() (terminalInterface, error) {
	return nil, ErrUnsupportedTerminal
}
