package editline

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistoryFile returns the default history file path following XDG Base Directory Specification.
// Returns ~/.config/editline/history or $XDG_CONFIG_HOME/editline/history if XDG_CONFIG_HOME is set.
func DefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "editline", "history")
}

// Load reads entries from the history file at path and adds them in order.
//
// The file holds one entry per line. Trailing whitespace is trimmed and blank
// lines are skipped; entries go through Add, so the capacity and duplicate
// rules apply. A missing file is not an error.
func (h *History) Load(path string) error {
	path, err := expandHistoryPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	h.mu.Lock()
	defer h.mu.Unlock()
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line != "" {
			h.addLocked(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	return nil
}

// Save writes every entry to path, one per line, replacing any previous
// content. Missing parent directories are created.
func (h *History) Save(path string) error {
	path, err := expandHistoryPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}

	w := bufio.NewWriter(file)
	for _, entry := range h.Entries() {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			file.Close()
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return file.Close()
}

// expandHistoryPath turns path into an absolute path. A leading ~ stands for
// the home directory; relative paths are resolved against the working
// directory.
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty history file path")
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return absPath, nil
}
