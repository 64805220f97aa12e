//go:build unix

package editline

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipeTerminal returns a realTerminal reading from and writing to pipes,
// plus the far ends of both.
func newPipeTerminal(t *testing.T) (term terminalInterface, input, output *os.File) {
	t.Helper()

	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, f := range []*os.File{inR, inW, outR, outW} {
			f.Close()
		}
	})

	term, err = newRealTerminal(inR, outW)
	require.NoError(t, err)
	return term, inW, outR
}

func TestRealTerminalOnPipes(t *testing.T) {
	t.Parallel()

	term, input, output := newPipeTerminal(t)
	assert.False(t, term.IsTerminal())

	_, err := term.SetRaw()
	assert.ErrorIs(t, err, ErrNotTerminal)

	_, ok, err := term.ReadByteNonBlocking()
	require.NoError(t, err)
	assert.False(t, ok, "nothing written yet")

	_, err = input.Write([]byte("hi"))
	require.NoError(t, err)

	b, err := term.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('h'), b)

	b, ok, err = term.ReadByteNonBlocking()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte('i'), b)

	require.NoError(t, term.Write([]byte("out")))
	buf := make([]byte, 3)
	_, err = output.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "out", string(buf))

	require.NoError(t, input.Close())
	_, err = term.ReadByte()
	assert.ErrorIs(t, err, io.EOF)

	assert.NoError(t, term.Close())
	assert.NoError(t, term.Close())
}

func TestStartOnPipe(t *testing.T) {
	t.Parallel()

	term, _, _ := newPipeTerminal(t)
	_, err := start(term, "xterm", "> ")
	assert.ErrorIs(t, err, ErrUnsupportedTerminal)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	_, err = Start(r, w, "> ")
	assert.ErrorIs(t, err, ErrUnsupportedTerminal)
}
