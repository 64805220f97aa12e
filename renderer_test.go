package editline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prompt string
		want   int
	}{
		{"", 0},
		{"> ", 2},
		{"\x1b[32m> \x1b[0m", 2},
		{"\x1b[1;34mhost\x1b[0m$ ", 6},
		{"\x1b]0;title\x07> ", 2},
		{"\x1b]0;title\x1b\\> ", 2},
		{"日本> ", 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, promptWidth(tt.prompt), "prompt %q", tt.prompt)
	}
}

func TestRefreshSingleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mask   bool
		prompt string
		line   string
		pos    int
		cols   int
		hint   *Hint
		want   string
	}{
		{
			name:   "simple line",
			prompt: "> ", line: "hello", pos: 5, cols: 80,
			want: "\r> hello\x1b[0K\r\x1b[7C",
		},
		{
			name:   "cursor inside line",
			prompt: "> ", line: "hello", pos: 1, cols: 80,
			want: "\r> hello\x1b[0K\r\x1b[3C",
		},
		{
			name:   "empty prompt and line",
			prompt: "", line: "", pos: 0, cols: 80,
			want: "\r\x1b[0K\r",
		},
		{
			name:   "colored prompt",
			prompt: "\x1b[32m> \x1b[0m", line: "hi", pos: 2, cols: 80,
			want: "\r\x1b[32m> \x1b[0mhi\x1b[0K\r\x1b[4C",
		},
		{
			name:   "wide characters",
			prompt: "> ", line: "日本", pos: 2, cols: 80,
			want: "\r> 日本\x1b[0K\r\x1b[6C",
		},
		{
			name:   "hint",
			prompt: "> ", line: "hi", pos: 2, cols: 80,
			hint: &Hint{Text: " world", Color: ColorGray},
			want: "\r> hi\x1b[90m world\x1b[0m\x1b[0K\r\x1b[4C",
		},
		{
			name:   "hint truncated",
			prompt: "> ", line: "abc", pos: 3, cols: 10,
			hint: &Hint{Text: "1234567890", Color: ColorRed, Bold: true},
			want: "\r> abc\x1b[1m\x1b[31m12345\x1b[0m\x1b[0K\r\x1b[5C",
		},
		{
			name:   "wide hint truncated",
			prompt: "> ", line: "abcdefg", pos: 7, cols: 12,
			hint: &Hint{Text: "日本語"},
			want: "\r> abcdefg日\x1b[0m\x1b[0K\r\x1b[9C",
		},
		{
			name:   "hint without style",
			prompt: "> ", line: "a", pos: 1, cols: 80,
			hint: &Hint{Text: "b"},
			want: "\r> ab\x1b[0m\x1b[0K\r\x1b[3C",
		},
		{
			name:   "mask mode",
			mask:   true,
			prompt: "> ", line: "abc", pos: 3, cols: 80,
			want: "\r> ***\x1b[0K\r\x1b[5C",
		},
		{
			name:   "window at end",
			prompt: "> ", line: "abcdefghijklmnop", pos: 16, cols: 10,
			want: "\r> jklmnop\x1b[0K\r\x1b[9C",
		},
		{
			name:   "window at start",
			prompt: "> ", line: "abcdefghijklmnop", pos: 0, cols: 10,
			want: "\r> abcdefgh\x1b[0K\r\x1b[2C",
		},
		{
			name:   "window centred on cursor",
			prompt: "> ", line: "abcdefghijklmnop", pos: 8, cols: 10,
			want: "\r> efghijkl\x1b[0K\r\x1b[6C",
		},
		{
			name:   "window hides hint",
			prompt: "> ", line: "abcdefghijklmnop", pos: 16, cols: 10,
			hint: &Hint{Text: "hint"},
			want: "\r> jklmnop\x1b[0K\r\x1b[9C",
		},
		{
			name:   "wide characters windowed at end",
			prompt: "> ", line: strings.Repeat("日本語", 10), pos: 30, cols: 20,
			want: "\r> 本語日本語日本語\x1b[0K\r\x1b[18C",
		},
		{
			name:   "wide characters windowed at start",
			prompt: "> ", line: strings.Repeat("日本語", 10), pos: 0, cols: 20,
			want: "\r> 日本語日本語日本語\x1b[0K\r\x1b[2C",
		},
		{
			name:   "line exactly fills row with cursor at end",
			prompt: "> ", line: "abcdefgh", pos: 8, cols: 10,
			want: "\r> bcdefgh\x1b[0K\r\x1b[9C",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &renderer{maskMode: tt.mask}
			got := r.refresh(frame{
				prompt: tt.prompt,
				line:   []rune(tt.line),
				pos:    tt.pos,
				cols:   tt.cols,
				hint:   tt.hint,
			})
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLineWindow(t *testing.T) {
	t.Parallel()

	lines := []string{
		strings.Repeat("a", 29),
		strings.Repeat("日", 15),
		"ab日本cd語ef日g本語hi",
	}
	for _, line := range lines {
		content := []rune(line)
		for width := 1; width < 12; width++ {
			for pos := 0; pos <= len(content); pos++ {
				start, end := lineWindow(content, pos, width)
				assert.LessOrEqual(t, 0, start)
				assert.LessOrEqual(t, start, pos)
				assert.LessOrEqual(t, pos, end)
				assert.LessOrEqual(t, end, len(content))
				assert.LessOrEqual(t, runeWidth(content[start:end]), width,
					"window wider than the row: line=%q pos=%d width=%d", line, pos, width)
				assert.Less(t, runeWidth(content[start:pos]), width,
					"cursor must stay inside the row: line=%q pos=%d width=%d", line, pos, width)
			}
		}
	}
}

func TestLineWindowUsesWholeRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line       string
		pos, width int
		start, end int
	}{
		{"abcdefghijklmnop", 0, 8, 0, 8},
		{"abcdefghijklmnop", 8, 8, 4, 12},
		{"abcdefghijklmnop", 16, 8, 9, 16},
		{strings.Repeat("日", 10), 10, 8, 7, 10},
		{strings.Repeat("日", 10), 5, 8, 3, 7},
		{strings.Repeat("日", 10), 0, 7, 0, 3},
	}
	for _, tt := range tests {
		start, end := lineWindow([]rune(tt.line), tt.pos, tt.width)
		assert.Equal(t, []int{tt.start, tt.end}, []int{start, end}, "line=%q pos=%d width=%d", tt.line, tt.pos, tt.width)
	}
}

func TestMultiLineLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		plen, contentLen, pos int
		cols                  int
		want                  layout
	}{
		{"fits on one row", 2, 3, 3, 10, layout{rows: 1, totalRows: 1, cursorRow: 0, cursorCol: 5}},
		{"empty", 0, 0, 0, 10, layout{rows: 1, totalRows: 1}},
		{"prompt only", 2, 0, 0, 10, layout{rows: 1, totalRows: 1, cursorCol: 2}},
		{"phantom after first row", 2, 8, 8, 10, layout{rows: 1, totalRows: 2, cursorRow: 1, cursorCol: 0, phantom: true}},
		{"full row, cursor inside", 2, 8, 4, 10, layout{rows: 1, totalRows: 1, cursorRow: 0, cursorCol: 6}},
		{"phantom after second row", 2, 18, 18, 10, layout{rows: 2, totalRows: 3, cursorRow: 2, phantom: true}},
		{"wrapped, cursor at end", 2, 15, 15, 10, layout{rows: 2, totalRows: 2, cursorRow: 1, cursorCol: 7}},
		{"wrapped, cursor on first row", 2, 15, 3, 10, layout{rows: 2, totalRows: 2, cursorRow: 0, cursorCol: 5}},
		{"cursor at start of second row", 2, 15, 8, 10, layout{rows: 2, totalRows: 2, cursorRow: 1, cursorCol: 0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, multiLineLayout(tt.plen, tt.contentLen, tt.pos, tt.cols))
		})
	}
}

func TestMultiLineLayoutRowCount(t *testing.T) {
	t.Parallel()

	for cols := 1; cols <= 12; cols++ {
		for plen := 0; plen <= 5; plen++ {
			for n := 0; n <= 30; n++ {
				l := multiLineLayout(plen, n, n, cols)

				want := (plen + n + cols - 1) / cols
				if want < 1 {
					want = 1
				}
				assert.Equal(t, want, l.rows, "cols=%d plen=%d n=%d", cols, plen, n)

				onBoundary := plen+n > 0 && (plen+n)%cols == 0
				assert.Equal(t, onBoundary, l.phantom, "cols=%d plen=%d n=%d", cols, plen, n)
				if onBoundary {
					assert.Equal(t, want+1, l.totalRows)
				} else {
					assert.Equal(t, want, l.totalRows)
				}
				assert.Less(t, l.cursorRow, l.totalRows)
				assert.Less(t, l.cursorCol, cols)
			}
		}
	}
}

func TestRefreshMultiLine(t *testing.T) {
	t.Parallel()

	r := &renderer{multiLine: true}
	draw := func(line string, pos int, hint *Hint) string {
		return string(r.refresh(frame{prompt: "> ", line: []rune(line), pos: pos, cols: 10, hint: hint}))
	}

	// First draw: one row, nothing to erase above
	assert.Equal(t, "\r\x1b[2K\r> abc\r\x1b[5C", draw("abc", 3, nil))
	assert.Equal(t, 1, r.oldRows)
	assert.Equal(t, 0, r.cursorRowOffset)

	// Content reaches the margin: phantom line
	assert.Equal(t, "\r\x1b[2K\r\n\x1b[2K\x1b[1A\r> abcdefgh\r\n\r", draw("abcdefgh", 8, nil))
	assert.Equal(t, 2, r.oldRows)
	assert.Equal(t, 1, r.cursorRowOffset)

	// Shrinking erases both old rows starting from the cursor row
	assert.Equal(t, "\r\x1b[1A\x1b[2K\r\n\x1b[2K\x1b[1A\r> ab\r\x1b[4C", draw("ab", 2, nil))
	assert.Equal(t, 1, r.oldRows)
	assert.Equal(t, 0, r.cursorRowOffset)

	// Hint on a single row
	assert.Equal(t, "\r\x1b[2K\r> ab\x1b[90m x\x1b[0m\r\x1b[4C",
		draw("ab", 2, &Hint{Text: " x", Color: ColorGray}))

	// Wrapped content, cursor on the first row; no hint once wrapped
	assert.Equal(t, "\r\x1b[2K\r\n\x1b[2K\x1b[1A\r> abcdefghijklmno\x1b[1A\r\x1b[5C",
		draw("abcdefghijklmno", 3, &Hint{Text: "hint"}))
	assert.Equal(t, 2, r.oldRows)
	assert.Equal(t, 0, r.cursorRowOffset)
}

func TestWrappedWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		plen       int
		line       string
		pos, cols  int
		contentLen int
		cursorPos  int
	}{
		{"ascii", 2, "abcdefghijkl", 12, 10, 12, 12},
		{"wide fits", 2, "abcdef日", 7, 10, 8, 8},
		{"wide pushed to next row", 2, "abcdefg日", 8, 10, 10, 10},
		{"cursor on pushed character", 2, "abcdefg日", 7, 10, 10, 8},
		{"cursor before pushed character", 2, "abcdefg日", 6, 10, 10, 6},
		{"wide characters fill row exactly", 0, "日日日日日x", 6, 10, 11, 11},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			contentLen, cursorPos := wrappedWidths(tt.plen, []rune(tt.line), tt.pos, tt.cols)
			assert.Equal(t, tt.contentLen, contentLen)
			assert.Equal(t, tt.cursorPos, cursorPos)
		})
	}
}

func TestRefreshMultiLineWideWrap(t *testing.T) {
	t.Parallel()

	r := &renderer{multiLine: true}
	got := r.refresh(frame{prompt: "> ", line: []rune("abcdefg日"), pos: 8, cols: 10})
	// The wide character starts the second row, so the cursor ends at column 2
	assert.Equal(t, "\r\x1b[2K\r\n\x1b[2K\x1b[1A\r> abcdefg日\r\x1b[2C", string(got))
	assert.Equal(t, 2, r.oldRows)
	assert.Equal(t, 1, r.cursorRowOffset)
}

func TestRefreshMultiLineMask(t *testing.T) {
	t.Parallel()

	r := &renderer{multiLine: true, maskMode: true}
	got := r.refresh(frame{prompt: "> ", line: []rune("secret"), pos: 6, cols: 80})
	assert.Equal(t, "\r\x1b[2K\r> ******\r\x1b[8C", string(got))
}

func TestRendererHide(t *testing.T) {
	t.Parallel()

	t.Run("SingleLine", func(t *testing.T) {
		t.Parallel()

		r := &renderer{}
		assert.Equal(t, "\r\x1b[0K", string(r.hide()))
	})

	t.Run("MultiLine", func(t *testing.T) {
		t.Parallel()

		r := &renderer{multiLine: true}
		r.refresh(frame{prompt: "> ", line: []rune("abcdefgh"), pos: 8, cols: 10})
		assert.Equal(t, "\r\x1b[1A\x1b[2K\r\n\x1b[2K\x1b[1A\r", string(r.hide()))
		assert.Equal(t, 0, r.oldRows)
		assert.Equal(t, 0, r.cursorRowOffset)
	})
}

func TestRendererZeroColumns(t *testing.T) {
	t.Parallel()

	r := &renderer{}
	got := r.refresh(frame{prompt: "> ", line: []rune("hi"), pos: 2, cols: 0})
	assert.Equal(t, "\r> hi\x1b[0K\r\x1b[4C", string(got))
}
