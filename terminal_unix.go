//go:build unix

package editline

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-tty"
	"golang.org/x/sys/unix"
)

// probeTimeoutMillis bounds the wait for each byte of a cursor position
// report, so a terminal that never answers cannot hang the session.
const probeTimeoutMillis = 100

var errProbeTimeout = errors.New("timed out waiting for cursor position report")

// realTerminal implements terminalInterface on POSIX file descriptors.
//
// Raw mode is handled with golang.org/x/term, byte-level reads, writes and
// descriptor flags with golang.org/x/sys/unix. When the session runs on the
// controlling terminal rather than stdin/stdout, the descriptors come from a
// go-tty handle which Close releases.
type realTerminal struct {
	in        *os.File // Kept so the descriptor is not closed by a finalizer
	out       *os.File
	ifd       int
	ofd       int
	tty       *tty.TTY // Non-nil when the terminal was opened by openTTY
	closed    bool     // Track if the tty handle was already closed
	rawActive bool     // Raw mode enabled and not yet restored
}

// newRealTerminal wraps already open input and output files.
func newRealTerminal(in, out *os.File) (terminalInterface, error) {
	return &realTerminal{
		in:  in,
		out: out,
		ifd: int(in.Fd()),
		ofd: int(out.Fd()),
	}, nil
}

// openTTY opens the controlling terminal with go-tty, so editing works even
// when stdin or stdout are redirected.
func openTTY() (terminalInterface, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	return &realTerminal{
		in:  t.Input(),
		out: t.Output(),
		ifd: int(t.Input().Fd()),
		ofd: int(t.Output().Fd()),
		tty: t,
	}, nil
}

func (t *realTerminal) IsTerminal() bool {
	return termIsTerminal(t.ifd)
}

func (t *realTerminal) Fd() int {
	return t.ifd
}

func (t *realTerminal) SetRaw() (*rawModeGuard, error) {
	if t.rawActive {
		return nil, ErrRawModeActive
	}
	guard, err := enableRawMode(t.ifd)
	if err != nil {
		return nil, err
	}
	t.rawActive = true
	return newRawModeGuard(func() error {
		t.rawActive = false
		return guard.Restore()
	}), nil
}

func (t *realTerminal) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(t.ifd, buf[:])
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			// The descriptor is in non-blocking mode (the Go runtime does this
			// for files it opens itself); wait until a byte arrives.
			if _, err := waitFd(t.ifd, unix.POLLIN, -1); err != nil {
				return 0, err
			}
			continue
		case err != nil:
			return 0, err
		case n == 0:
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

func (t *realTerminal) ReadByteNonBlocking() (b byte, ok bool, err error) {
	flags, err := unix.FcntlInt(uintptr(t.ifd), unix.F_GETFL, 0)
	if err != nil {
		return 0, false, err
	}
	if _, err := unix.FcntlInt(uintptr(t.ifd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		return 0, false, err
	}
	defer func() {
		if _, rerr := unix.FcntlInt(uintptr(t.ifd), unix.F_SETFL, flags); rerr != nil && err == nil {
			b, ok, err = 0, false, rerr
		}
	}()

	var buf [1]byte
	for {
		n, err := unix.Read(t.ifd, buf[:])
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, false, nil
		case err != nil:
			return 0, false, err
		case n == 0:
			return 0, false, nil
		}
		return buf[0], true, nil
	}
}

// Columns asks the kernel for the window size and falls back to measuring
// with cursor position reports. If both fail it assumes 80 columns.
func (t *realTerminal) Columns() int {
	if w, _, err := termGetSize(t.ofd); err == nil && w > 0 {
		return w
	}
	cols, err := probeColumns(timedProbe{t})
	if err != nil {
		return defaultColumns
	}
	return cols
}

func (t *realTerminal) Write(p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(t.ofd, p)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			if _, err := waitFd(t.ofd, unix.POLLOUT, -1); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		case n == 0:
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}

func (t *realTerminal) Close() error {
	// Prevent double-close of the tty handle
	if t.closed || t.tty == nil {
		return nil
	}
	t.closed = true
	return t.tty.Close()
}

// waitFd blocks until fd is ready for the given poll events or timeoutMillis
// elapses (-1 waits forever). It reports whether fd became ready.
func waitFd(fd int, events int16, timeoutMillis int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	for {
		n, err := unix.Poll(fds, timeoutMillis)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// timedProbe reads cursor position replies with a per-byte timeout.
type timedProbe struct {
	t *realTerminal
}

func (p timedProbe) ReadByte() (byte, error) {
	ready, err := waitFd(p.t.ifd, unix.POLLIN, probeTimeoutMillis)
	if err != nil {
		return 0, err
	}
	if !ready {
		return 0, errProbeTimeout
	}
	return p.t.ReadByte()
}

func (p timedProbe) Write(b []byte) error {
	return p.t.Write(b)
}
