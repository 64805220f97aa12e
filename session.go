package editline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty line or the
	// input reaches end of file.
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrMoreInput is returned by Feed when a key was processed but the line
	// is not finished yet. It is not a failure; call Feed again when input
	// is readable.
	ErrMoreInput = errors.New("more input needed")
	// ErrUnsupportedTerminal is returned by Start when the input is not an
	// interactive terminal or the terminal cannot handle escape sequences.
	// Callers should fall back to reading plain lines.
	ErrUnsupportedTerminal = errors.New("unsupported terminal")
)

// Config holds the configuration for an editing session.
type Config struct {
	Multiline     bool      // Wrap long lines over several rows instead of scrolling
	MaskMode      bool      // Draw '*' for every character, for passwords
	Completer     Completer // Tab completion (nil disables Tab)
	Hinter        Hinter    // Hints shown right of the line (nil for none)
	History       *History  // History browsed with Up/Down (nil for a private, empty one)
	KeyMap        *KeyMap   // Key bindings (nil for default)
	MaxLineLength int       // Line capacity (0 for DefaultMaxLineLength)
}

// Option represents a configuration option for a session
type Option func(*Config)

// WithMultiline enables multi-line mode, where a line longer than the
// terminal width wraps over several rows.
func WithMultiline(multiline bool) Option {
	return func(c *Config) {
		c.Multiline = multiline
	}
}

// WithMaskMode hides the typed characters behind asterisks.
func WithMaskMode(mask bool) Option {
	return func(c *Config) {
		c.MaskMode = mask
	}
}

// WithCompleter sets the tab completion source
func WithCompleter(completer Completer) Option {
	return func(c *Config) {
		c.Completer = completer
	}
}

// WithHinter sets the hint source
func WithHinter(hinter Hinter) Option {
	return func(c *Config) {
		c.Hinter = hinter
	}
}

// WithHistory shares history with the session.
//
// The session only reads it. Accepted lines are not added automatically;
// call History.Add with the line returned by Feed when it should be kept.
//
// Example:
//
//	history := editline.NewHistory(500)
//	_ = history.Load("~/.myapp_history")
//	for {
//		line, err := editline.ReadLine("> ", editline.WithHistory(history))
//		if err != nil {
//			break
//		}
//		history.Add(line)
//	}
//	_ = history.Save("~/.myapp_history")
func WithHistory(history *History) Option {
	return func(c *Config) {
		c.History = history
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithMaxLineLength sets the line capacity. Keys typed when the line is full
// sound the bell and are dropped.
func WithMaxLineLength(n int) Option {
	return func(c *Config) {
		c.MaxLineLength = n
	}
}

// Session is one line being edited on a terminal in raw mode.
//
// A session can be driven in a blocking loop, or from the caller's own event
// loop by calling Feed whenever Fd is readable:
//
//	s, err := editline.Start(os.Stdin, os.Stdout, "> ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Stop()
//
//	for {
//		line, err := s.Feed()
//		if errors.Is(err, editline.ErrMoreInput) {
//			continue
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("got", line)
//		break
//	}
//
// A Session is not safe for concurrent use.
type Session struct {
	term   terminalInterface
	guard  *rawModeGuard
	config Config
	prompt string

	buf    *lineBuffer
	render *renderer

	historyIndex int    // 0 is the line being edited, n the n-th newest entry
	savedLine    string // Line being edited when history browsing started
	completion   *completionState

	active  bool // Still accepting keys
	stopped bool
}

// Start puts the terminal in raw mode and draws the prompt.
//
// It returns ErrUnsupportedTerminal when in is not a terminal or $TERM names
// a terminal that cannot handle the escape sequences used for editing.
func Start(in, out *os.File, prompt string, opts ...Option) (*Session, error) {
	t, err := newRealTerminal(in, out)
	if err != nil {
		return nil, err
	}
	return start(t, os.Getenv("TERM"), prompt, opts...)
}

// StartTTY is like Start but edits on the controlling terminal, /dev/tty,
// so it works even when standard input or output are redirected. Stop closes
// the terminal again.
func StartTTY(prompt string, opts ...Option) (*Session, error) {
	t, err := openTTY()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	s, err := start(t, os.Getenv("TERM"), prompt, opts...)
	if err != nil {
		//nolint:errcheck // The start error is more useful to the caller.
		t.Close()
		return nil, err
	}
	return s, nil
}

func start(t terminalInterface, termName, prompt string, opts ...Option) (*Session, error) {
	var config Config
	for _, opt := range opts {
		opt(&config)
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.History == nil {
		config.History = NewHistory(DefaultHistoryMaxLen)
	}

	if !t.IsTerminal() || isUnsupportedTerm(termName) {
		return nil, ErrUnsupportedTerminal
	}

	guard, err := t.SetRaw()
	if err != nil {
		if errors.Is(err, ErrNotTerminal) {
			return nil, ErrUnsupportedTerminal
		}
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	s := &Session{
		term:   t,
		guard:  guard,
		config: config,
		prompt: prompt,
		buf:    newLineBuffer(config.MaxLineLength),
		render: &renderer{
			multiLine: config.Multiline,
			maskMode:  config.MaskMode,
		},
		active: true,
	}

	if err := s.refresh(); err != nil {
		//nolint:errcheck // The render error is more useful to the caller.
		guard.Restore()
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}
	return s, nil
}

// Feed reads one key from the terminal, blocking until a byte is available,
// and processes it.
//
// It returns the line and a nil error when the user pressed Enter,
// ErrMoreInput while the line is still being edited, ErrEOF on Ctrl+D with an
// empty line or end of input, and ErrInterrupted on Ctrl+C. Any other error
// comes from terminal I/O. Once the line is finished, further calls return
// ErrEOF. The terminal stays in raw mode until Stop.
func (s *Session) Feed() (string, error) {
	if !s.active {
		return "", ErrEOF
	}

	b, err := s.term.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.active = false
			return "", ErrEOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return s.processKey(b)
}

// Stop restores the terminal mode and releases a terminal opened by
// StartTTY. It is safe to call Stop multiple times; only the first call
// does anything.
func (s *Session) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.active = false

	var result *multierror.Error
	if err := s.guard.Restore(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to restore terminal mode: %w", err))
	}
	if err := s.term.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to close terminal: %w", err))
	}
	return result.ErrorOrNil()
}

// Hide erases the prompt and line, so the caller can print output of its
// own. Call Show afterwards to draw them again.
func (s *Session) Hide() error {
	return s.write(s.render.hide())
}

// Show draws the prompt and line again after Hide.
func (s *Session) Show() error {
	return s.refresh()
}

// Fd returns the input descriptor, for use with poll or select in the
// caller's event loop.
func (s *Session) Fd() int {
	return s.term.Fd()
}

// Line returns the line as currently edited.
func (s *Session) Line() string {
	return s.buf.String()
}

// Prompt returns the prompt the session was started with.
func (s *Session) Prompt() string {
	return s.prompt
}

// run feeds keys until the line is finished.
func (s *Session) run() (string, error) {
	for {
		line, err := s.Feed()
		if errors.Is(err, ErrMoreInput) {
			continue
		}
		return line, err
	}
}

// refresh redraws prompt and line, with the hint when there is one.
func (s *Session) refresh() error {
	return s.redraw(true)
}

func (s *Session) redraw(withHint bool) error {
	f := frame{
		prompt: s.prompt,
		line:   s.buf.chars,
		pos:    s.buf.pos,
		cols:   s.term.Columns(),
	}
	if withHint && s.completion == nil && s.config.Hinter != nil {
		if hint, ok := s.config.Hinter.Hint(s.buf.String()); ok {
			f.hint = &hint
		}
	}
	return s.write(s.render.refresh(f))
}

func (s *Session) write(p []byte) error {
	if err := s.term.Write(p); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}
	return nil
}

func (s *Session) beep() error {
	return s.write([]byte(seqBell))
}

// accept finishes the line. The hint is erased and, in multi-line mode, the
// cursor moved below the last row so output continues after the line.
func (s *Session) accept() (string, error) {
	line := s.buf.String()
	s.active = false

	if s.render.multiLine {
		s.buf.moveEnd()
	}
	if s.render.multiLine || s.config.Hinter != nil {
		if err := s.redraw(false); err != nil {
			return "", err
		}
	}
	if err := s.write([]byte("\r\n")); err != nil {
		return "", err
	}
	return line, nil
}

// navigateHistory shows the next older or newer history entry. Leaving the
// line being edited saves it; coming back to index 0 restores it.
func (s *Session) navigateHistory(older bool) error {
	n := s.config.History.Len()
	if n == 0 {
		return nil
	}
	if s.historyIndex > n {
		s.historyIndex = n
	}
	if s.historyIndex == 0 && older {
		s.savedLine = s.buf.String()
	}

	switch {
	case older && s.historyIndex < n:
		s.historyIndex++
	case !older && s.historyIndex > 0:
		s.historyIndex--
	default:
		return nil
	}

	if s.historyIndex == 0 {
		s.buf.set(s.savedLine)
	} else if entry, ok := s.config.History.recent(s.historyIndex); ok {
		s.buf.set(entry)
	}
	return s.refresh()
}

func (s *Session) clearScreen() error {
	if err := s.write([]byte(seqClearScreen)); err != nil {
		return err
	}
	s.render.reset()
	return s.refresh()
}
