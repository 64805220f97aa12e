package editline

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// promptWidth returns the number of columns the prompt occupies on screen.
// Escape sequences take no space; wide characters take two columns.
func promptWidth(prompt string) int {
	return ansi.StringWidth(prompt)
}

// frame is everything the renderer needs to draw the line once.
type frame struct {
	prompt string
	line   []rune
	pos    int
	cols   int
	hint   *Hint // nil when no hint should be drawn, e.g. while completing
}

// renderer turns the edited line into the escape sequences that redraw it.
//
// The renderer supports two modes:
//   - Single-line: the line is drawn on one row. When it does not fit, a
//     window of the line around the cursor is drawn instead.
//   - Multi-line: the line wraps over as many rows as needed. The renderer
//     remembers how many rows it drew and on which row it left the cursor,
//     so the next redraw can erase the old block before drawing the new one.
//
// Every redraw ends with an absolute column move (carriage return followed by
// a forward move), so the result does not depend on where the terminal
// thinks the cursor was.
type renderer struct {
	multiLine bool
	maskMode  bool

	oldRows         int // Rows drawn by the previous multi-line redraw
	cursorRowOffset int // Row of the cursor within that block, 0 based
}

// refresh returns the bytes that redraw f.
func (r *renderer) refresh(f frame) []byte {
	if f.cols < 1 {
		f.cols = defaultColumns
	}
	if r.multiLine {
		return r.refreshMultiLine(f)
	}
	return r.refreshSingleLine(f)
}

// reset forgets the previous multi-line block, after the screen was cleared
// or the line was hidden.
func (r *renderer) reset() {
	r.oldRows = 0
	r.cursorRowOffset = 0
}

// display returns the characters drawn for the line.
func (r *renderer) display(line []rune) []rune {
	if !r.maskMode {
		return line
	}
	masked := make([]rune, len(line))
	for i := range masked {
		masked[i] = '*'
	}
	return masked
}

func (r *renderer) refreshSingleLine(f frame) []byte {
	var out bytes.Buffer
	plen := promptWidth(f.prompt)
	available := max(f.cols-plen, 0)
	content := r.display(f.line)

	out.WriteByte('\r')
	out.WriteString(f.prompt)

	var cursorCol int
	if runeWidth(content) > available || plen+runeWidth(content[:f.pos]) >= f.cols {
		start, end := lineWindow(content, f.pos, available)
		out.WriteString(string(content[start:end]))
		cursorCol = plen + runeWidth(content[start:f.pos])
	} else {
		out.WriteString(string(content))
		if f.hint != nil {
			writeHint(&out, *f.hint, available-runeWidth(content))
		}
		cursorCol = plen + runeWidth(content[:f.pos])
	}

	out.WriteString(seqEraseToEOL)
	moveToColumn(&out, cursorCol)
	return out.Bytes()
}

// lineWindow picks the part of content that is drawn when the line does not
// fit in width columns. The window is centred on pos where possible, never
// wider than width columns, and leaves the cursor inside the row.
func lineWindow(content []rune, pos, width int) (start, end int) {
	if width < 1 {
		return pos, pos
	}

	start, end = pos, pos
	left, used := 0, 0 // Columns before the cursor, columns in the window
	for start > 0 {
		w := runewidth.RuneWidth(content[start-1])
		if left+w > width/2 || left+w > width-1 {
			break
		}
		start--
		left += w
		used += w
	}
	for end < len(content) {
		w := runewidth.RuneWidth(content[end])
		if used+w > width {
			break
		}
		end++
		used += w
	}
	// Near the end of the line, fill the row leftwards
	for start > 0 {
		w := runewidth.RuneWidth(content[start-1])
		if used+w > width || left+w > width-1 {
			break
		}
		start--
		left += w
		used += w
	}
	return start, end
}

// layout describes where a multi-line redraw puts things, in rows and
// columns relative to the first row of the prompt.
type layout struct {
	rows      int  // Rows used by prompt and content
	totalRows int  // rows, plus one for the phantom line
	cursorRow int  // Row of the cursor
	cursorCol int  // Column of the cursor
	phantom   bool // Cursor sits at the start of an extra, empty row
}

// multiLineLayout computes the wrapped layout of a prompt plen columns wide
// followed by content contentLen columns wide, with the cursor cursorPos
// columns into the content. Widths are taken as one continuous run of
// columns; wrappedWidths accounts for wide characters pushed to the next row.
//
// When the cursor is at the end of the content and the content ends exactly
// at the right margin, the cursor belongs at the start of the next row,
// which contains nothing yet: the phantom line.
func multiLineLayout(plen, contentLen, cursorPos, cols int) layout {
	total := plen + contentLen
	cursor := plen + cursorPos

	l := layout{rows: max((total+cols-1)/cols, 1)}
	l.phantom = cursorPos == contentLen && cursor > 0 && cursor%cols == 0
	l.totalRows = l.rows
	if l.phantom {
		l.totalRows++
	}

	l.cursorRow = cursor / cols
	l.cursorCol = cursor % cols
	return l
}

// wrappedWidths returns how many columns content and content[:pos] take
// after a prompt plen columns wide. A double-width character that would
// start in the last column of a row is moved to the next row by the
// terminal, so the column it skips is counted too.
func wrappedWidths(plen int, content []rune, pos, cols int) (contentLen, cursorPos int) {
	col := plen
	for i, r := range content {
		w := runewidth.RuneWidth(r)
		if rem := col % cols; rem > 0 && rem+w > cols {
			col += cols - rem
		}
		if i == pos {
			cursorPos = col - plen
		}
		col += w
	}
	if pos >= len(content) {
		cursorPos = col - plen
	}
	return col - plen, cursorPos
}

func (r *renderer) refreshMultiLine(f frame) []byte {
	var out bytes.Buffer
	plen := promptWidth(f.prompt)
	content := r.display(f.line)
	contentLen, cursorPos := wrappedWidths(plen, content, f.pos, f.cols)
	l := multiLineLayout(plen, contentLen, cursorPos, f.cols)

	// Go to the first row of the previous block
	out.WriteByte('\r')
	moveUp(&out, r.cursorRowOffset)

	// Clear every row either block covers, then return to the top
	clearRows := max(r.oldRows, l.totalRows)
	for i := 0; i < clearRows; i++ {
		if i > 0 {
			out.WriteString("\r\n")
		}
		out.WriteString(seqEraseLine)
	}
	moveUp(&out, clearRows-1)
	out.WriteByte('\r')

	out.WriteString(f.prompt)
	out.WriteString(string(content))

	if f.hint != nil && l.rows == 1 && !l.phantom {
		writeHint(&out, *f.hint, f.cols-(plen+runeWidth(content)))
	}
	if l.phantom {
		out.WriteString("\r\n")
	}

	// The terminal cursor is now on the last row of the block
	lastRow := l.totalRows - 1
	switch {
	case l.cursorRow < lastRow:
		moveUp(&out, lastRow-l.cursorRow)
	case l.cursorRow > lastRow:
		fmt.Fprintf(&out, "\x1b[%dB", l.cursorRow-lastRow)
	}
	moveToColumn(&out, l.cursorCol)

	r.oldRows = l.totalRows
	r.cursorRowOffset = l.cursorRow
	return out.Bytes()
}

// hide returns the bytes that erase the line from the screen. The next
// refresh draws it again from scratch.
func (r *renderer) hide() []byte {
	var out bytes.Buffer
	out.WriteByte('\r')
	if !r.multiLine || r.oldRows <= 1 {
		out.WriteString(seqEraseToEOL)
		r.reset()
		return out.Bytes()
	}

	moveUp(&out, r.cursorRowOffset)
	for i := 0; i < r.oldRows; i++ {
		if i > 0 {
			out.WriteString("\r\n")
		}
		out.WriteString(seqEraseLine)
	}
	moveUp(&out, r.oldRows-1)
	out.WriteByte('\r')
	r.reset()
	return out.Bytes()
}

// writeHint draws hint in its style, cut to fit in space columns.
func writeHint(out *bytes.Buffer, hint Hint, space int) {
	if space <= 0 || hint.Text == "" {
		return
	}
	text := ansi.Truncate(hint.Text, space, "")
	if text == "" {
		return
	}
	out.WriteString(hint.ToANSI())
	out.WriteString(text)
	out.WriteString(Reset())
}

func moveUp(out *bytes.Buffer, n int) {
	if n > 0 {
		fmt.Fprintf(out, "\x1b[%dA", n)
	}
}

// moveToColumn puts the cursor at column col of the current row. A forward
// move of zero is omitted since terminals treat it as a move of one.
func moveToColumn(out *bytes.Buffer, col int) {
	out.WriteByte('\r')
	if col > 0 {
		fmt.Fprintf(out, "\x1b[%dC", col)
	}
}

func runeWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += runewidth.RuneWidth(r)
	}
	return w
}
