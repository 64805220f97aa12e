package editline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// calculateFuzzyScore calculates a fuzzy matching score between input and candidate.
// Returns 0 if no match, higher scores for better matches.
// Supports case-insensitive matching when ignoreCase is true.
func calculateFuzzyScore(input, candidate string, ignoreCase bool) int {
	if input == "" {
		return 1
	}
	if candidate == "" {
		return 0
	}

	if ignoreCase {
		input = strings.ToLower(input)
		candidate = strings.ToLower(candidate)
	}

	// Exact match gets highest score
	if input == candidate {
		return 1000
	}

	// Prefix match gets high score
	if strings.HasPrefix(candidate, input) {
		return 800 + len(input)*10
	}

	// Contains match gets medium score
	if strings.Contains(candidate, input) {
		return 500 + len(input)*5
	}

	// Every input character must appear in order
	score := 0
	rest := candidate
	for _, r := range input {
		i := strings.IndexRune(rest, r)
		if i < 0 {
			return 0
		}
		score += 10
		rest = rest[i+len(string(r)):]
	}
	return score
}

// fuzzyCompleter ranks a fixed list of candidates against the typed line.
type fuzzyCompleter struct {
	candidates []string
}

// NewFuzzyCompleter creates a completer that matches the whole line against
// candidates, ignoring case.
//
// Results are ranked by match quality: exact matches first, then prefix
// matches, substring matches, and finally candidates that merely contain the
// typed characters in order. Candidates with equal scores keep their original
// order. An empty line yields every candidate.
//
// Example:
//
//	completer := editline.NewFuzzyCompleter([]string{
//		"git status", "git commit", "git push",
//	})
//	line, err := editline.ReadLine("$ ", editline.WithCompleter(completer))
func NewFuzzyCompleter(candidates []string) Completer {
	return &fuzzyCompleter{candidates: append([]string{}, candidates...)}
}

func (f *fuzzyCompleter) Complete(line string) []string {
	type match struct {
		text  string
		score int
	}

	var matches []match
	for _, c := range f.candidates {
		if score := calculateFuzzyScore(line, c, true); score > 0 {
			matches = append(matches, match{text: c, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = m.text
	}
	return results
}

// NewFileCompleter creates a completer for file and directory names.
//
// The last space-separated word of the line is completed as a path; the rest
// of the line is kept as typed. Directories get a trailing slash. Hidden
// entries are only offered when the word itself starts with a dot.
func NewFileCompleter() Completer {
	return CompleterFunc(func(line string) []string {
		head, word := "", line
		if i := strings.LastIndexByte(line, ' '); i >= 0 {
			head, word = line[:i+1], line[i+1:]
		}
		paths := completeFilePath(word)
		results := make([]string, len(paths))
		for i, p := range paths {
			results[i] = head + p
		}
		return results
	})
}

// completeFilePath lists the entries matching path
func completeFilePath(path string) []string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	// If path ends with separator, we're completing in that directory
	if path == "" || strings.HasSuffix(path, "/") {
		dir = path
		base = ""
	}
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files unless explicitly requested
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if base != "" && !strings.HasPrefix(name, base) {
			continue
		}

		fullPath := name
		switch {
		case path == "" || (dir == "." && !strings.HasPrefix(path, "./")):
		case strings.HasSuffix(dir, "/"):
			fullPath = dir + name
		default:
			fullPath = dir + "/" + name
		}
		if entry.IsDir() {
			fullPath += "/"
		}
		results = append(results, fullPath)
	}
	return results
}
