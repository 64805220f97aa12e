package editline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultHistoryMaxLen, NewHistory(0).MaxLen())
	assert.Equal(t, DefaultHistoryMaxLen, NewHistory(-5).MaxLen())
	assert.Equal(t, 3, NewHistory(3).MaxLen())
	assert.Equal(t, 0, NewHistory(3).Len())
}

func TestHistoryAdd(t *testing.T) {
	t.Parallel()

	t.Run("AdjacentDuplicate", func(t *testing.T) {
		t.Parallel()

		h := NewHistory(10)
		assert.True(t, h.Add("ls"))
		assert.False(t, h.Add("ls"), "Adjacent duplicate should be rejected")
		assert.Equal(t, 1, h.Len())

		assert.True(t, h.Add("pwd"))
		assert.True(t, h.Add("ls"), "Non-adjacent duplicate should be kept")
		assert.Equal(t, []string{"ls", "pwd", "ls"}, h.Entries())
	})

	t.Run("EmptyLine", func(t *testing.T) {
		t.Parallel()

		h := NewHistory(10)
		assert.False(t, h.Add(""))
		assert.Equal(t, 0, h.Len())
	})

	t.Run("EvictsOldest", func(t *testing.T) {
		t.Parallel()

		h := NewHistory(3)
		for _, line := range []string{"a", "b", "c", "d", "e"} {
			h.Add(line)
		}
		assert.Equal(t, []string{"c", "d", "e"}, h.Entries())
	})
}

func TestHistorySetMaxLen(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Add(line)
	}

	assert.False(t, h.SetMaxLen(0))
	assert.Equal(t, 5, h.Len())

	assert.True(t, h.SetMaxLen(2))
	assert.Equal(t, []string{"d", "e"}, h.Entries())

	h.Add("f")
	assert.Equal(t, []string{"e", "f"}, h.Entries())

	assert.True(t, h.SetMaxLen(5))
	h.Add("g")
	assert.Equal(t, []string{"e", "f", "g"}, h.Entries())
}

func TestHistoryRecent(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	h.Add("first")
	h.Add("second")

	entry, ok := h.recent(1)
	assert.True(t, ok)
	assert.Equal(t, "second", entry)

	entry, ok = h.recent(2)
	assert.True(t, ok)
	assert.Equal(t, "first", entry)

	_, ok = h.recent(0)
	assert.False(t, ok)
	_, ok = h.recent(3)
	assert.False(t, ok)
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	t.Parallel()

	h := NewHistory(10)
	h.Add("a")
	entries := h.Entries()
	entries[0] = "changed"
	assert.Equal(t, []string{"a"}, h.Entries())

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryFilePersistence(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "history")

	h := NewHistory(10)
	h.Add("git status")
	h.Add("git commit -m 'test'")
	h.Add("ls -la")
	require.NoError(t, h.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "git status\ngit commit -m 'test'\nls -la\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := NewHistory(10)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, h.Entries(), loaded.Entries())
}

func TestHistorySaveTruncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("old 1\nold 2\nold 3\n"), 0600))

	h := NewHistory(10)
	h.Add("new")
	require.NoError(t, h.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestHistoryLoad(t *testing.T) {
	t.Parallel()

	t.Run("SkipsBlankLinesAndTrims", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "history")
		content := "first  \n\n   \nsecond\r\nsecond\n\tthird\t\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		h := NewHistory(10)
		require.NoError(t, h.Load(path))
		assert.Equal(t, []string{"first", "second", "\tthird"}, h.Entries())
	})

	t.Run("RespectsCapacity", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "history")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0600))

		h := NewHistory(2)
		require.NoError(t, h.Load(path))
		assert.Equal(t, []string{"c", "d"}, h.Entries())
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()

		h := NewHistory(10)
		err := h.Load(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.NoError(t, err)
		assert.Equal(t, 0, h.Len())
	})

	t.Run("EmptyPath", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, NewHistory(10).Load(""))
		assert.Error(t, NewHistory(10).Save(""))
	})
}

func TestExpandHistoryPath(t *testing.T) {
	t.Parallel()

	t.Run("EmptyPath", func(t *testing.T) {
		t.Parallel()

		_, err := expandHistoryPath("")
		assert.Error(t, err)
	})

	t.Run("AbsolutePath", func(t *testing.T) {
		t.Parallel()

		result, err := expandHistoryPath("/tmp/test_history")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/test_history", result)
	})

	t.Run("RelativePath", func(t *testing.T) {
		t.Parallel()

		result, err := expandHistoryPath("./test_history")
		require.NoError(t, err)
		expected, err := filepath.Abs("./test_history")
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("HomeDirectoryPath", func(t *testing.T) {
		t.Parallel()

		homeDir, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}
		result, err := expandHistoryPath("~/.test_history")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(homeDir, ".test_history"), result)
	})
}

func TestDefaultHistoryFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	assert.Equal(t, filepath.Join(configDir, "editline", "history"), DefaultHistoryFile())
}

func TestHistoryWatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")
	h := NewHistory(10)
	h.Add("local")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.Watch(ctx, path)
	}()

	other := NewHistory(10)
	other.Add("from")
	other.Add("another process")

	// The watcher may not be registered yet when the first write happens,
	// so keep rewriting the file until the change is picked up.
	assert.Eventually(t, func() bool {
		if err := other.Save(path); err != nil {
			return false
		}
		entries := h.Entries()
		return len(entries) == 2 && entries[0] == "from" && entries[1] == "another process"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
