package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/editline"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var defaultCommands []byte

// command is one entry of the command list file.
type command struct {
	Name  string `yaml:"name"`
	Hint  string `yaml:"hint"`
	Color string `yaml:"color"`
	Bold  bool   `yaml:"bold"`
}

type commandList struct {
	Commands []command `yaml:"commands"`
}

var colorNames = map[string]editline.Color{
	"":        editline.ColorGray,
	"default": editline.ColorDefault,
	"black":   editline.ColorBlack,
	"red":     editline.ColorRed,
	"green":   editline.ColorGreen,
	"yellow":  editline.ColorYellow,
	"blue":    editline.ColorBlue,
	"magenta": editline.ColorMagenta,
	"cyan":    editline.ColorCyan,
	"white":   editline.ColorWhite,
	"gray":    editline.ColorGray,
}

// loadCommands reads the command list at path, or the built-in list when
// path is empty.
func loadCommands(path string) (*commandList, error) {
	data := defaultCommands
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // path comes from the command line
		if err != nil {
			return nil, fmt.Errorf("failed to read command list: %w", err)
		}
	}
	return parseCommands(data)
}

func parseCommands(data []byte) (*commandList, error) {
	var list commandList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse command list: %w", err)
	}
	for i, c := range list.Commands {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("command %d has no name", i+1)
		}
		if _, ok := colorNames[strings.ToLower(c.Color)]; !ok {
			return nil, fmt.Errorf("command %q: unknown color %q", c.Name, c.Color)
		}
	}
	return &list, nil
}

func (l *commandList) names() []string {
	out := make([]string, 0, len(l.Commands))
	for _, c := range l.Commands {
		out = append(out, c.Name)
	}
	return out
}

// Hint implements editline.Hinter.
func (l *commandList) Hint(line string) (editline.Hint, bool) {
	for _, c := range l.Commands {
		if c.Name == line && c.Hint != "" {
			return editline.Hint{
				Text:  c.Hint,
				Color: colorNames[strings.ToLower(c.Color)],
				Bold:  c.Bold,
			}, true
		}
	}
	return editline.Hint{}, false
}
