package editline

import (
	"strconv"
	"strings"
)

// Color is an SGR foreground color code used to draw hints.
// The zero value leaves the terminal's current color untouched.
type Color int

// Standard ANSI foreground colors.
const (
	ColorDefault Color = 0
	ColorBlack   Color = 30
	ColorRed     Color = 31
	ColorGreen   Color = 32
	ColorYellow  Color = 33
	ColorBlue    Color = 34
	ColorMagenta Color = 35
	ColorCyan    Color = 36
	ColorWhite   Color = 37
	ColorGray    Color = 90
)

// Hint is text shown dimmed or colored to the right of the typed line, such
// as the expected arguments of a command. It is never part of the line that
// Feed returns.
type Hint struct {
	Text  string // Text drawn after the line
	Color Color  // Foreground color; ColorDefault for none
	Bold  bool   // Draw the hint in bold
}

// ToANSI returns the escape sequences that switch the terminal to the hint's
// style, or an empty string when the hint uses the default style.
func (h Hint) ToANSI() string {
	var sb strings.Builder
	if h.Bold {
		sb.WriteString("\x1b[1m")
	}
	if h.Color > 0 {
		sb.WriteString("\x1b[")
		sb.WriteString(strconv.Itoa(int(h.Color)))
		sb.WriteString("m")
	}
	return sb.String()
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
