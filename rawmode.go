package editline

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"
)

var (
	termIsTerminal = term.IsTerminal
	termGetState   = term.GetState
	termMakeRaw    = term.MakeRaw
	termRestore    = term.Restore
	termGetSize    = term.GetSize

	raiseSignal = func(sig os.Signal) error {
		p, err := os.FindProcess(os.Getpid())
		if err != nil {
			return err
		}
		return p.Signal(sig)
	}
)

// rawModeGuard owns the terminal attributes captured before raw mode was
// enabled. Restore puts them back exactly once, however many times it is
// called.
type rawModeGuard struct {
	once    sync.Once
	restore func() error
	err     error
}

func newRawModeGuard(restore func() error) *rawModeGuard {
	return &rawModeGuard{restore: restore}
}

// Restore returns the terminal to the mode it was in before raw mode.
// Calls after the first return the first call's result without touching
// the terminal.
func (g *rawModeGuard) Restore() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		g.err = g.restore()
	})
	return g.err
}

// enableRawMode captures the attributes of fd and switches it to raw mode:
// no canonical processing, no echo, no signal characters, no input or output
// post-processing, 8-bit characters, and reads that return every single byte
// without a timer.
func enableRawMode(fd int) (*rawModeGuard, error) {
	if !termIsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	orig, err := termGetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal state: %w", err)
	}
	if _, err := termMakeRaw(fd); err != nil {
		return nil, fmt.Errorf("failed to set raw terminal mode: %w", err)
	}
	return newRawModeGuard(func() error {
		return termRestore(fd, orig)
	}), nil
}

// WithRawMode enters raw terminal mode on fd, executes fn, and guarantees the
// terminal is restored on return, whether fn returns normally, returns an
// error, or panics.
//
// Raw mode turns Ctrl+C into an ordinary byte, but SIGINT or SIGTERM can
// still come from another process. When one arrives while fn runs, the
// terminal is restored first and the signal is then delivered again with
// the default handling, so the process ends as it would have otherwise.
func WithRawMode(fd int, fn func() error) error {
	guard, err := enableRawMode(fd)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case sig := <-sigCh:
			//nolint:errcheck // Best-effort terminal restore; the process is going away.
			guard.Restore()
			signal.Stop(sigCh)
			//nolint:errcheck // Nothing is left to report the failure to.
			raiseSignal(sig)
		case <-done:
		}
	}()
	defer func() {
		signal.Stop(sigCh)
		close(done)
		wg.Wait()
	}()

	// Restore terminal on panic before re-panicking.
	defer func() {
		if r := recover(); r != nil {
			//nolint:errcheck // Best-effort terminal restore; we are panicking anyway.
			guard.Restore()
			panic(r)
		}
	}()

	if err := fn(); err != nil {
		//nolint:errcheck // The callback error is more useful to the caller.
		guard.Restore()
		return err
	}
	return guard.Restore()
}
