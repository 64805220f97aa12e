// Package main is a configurable editline demo: completion and hints come
// from a YAML command list, and flags switch the editing modes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/editline"
	"github.com/spf13/cobra"
)

var (
	multiline    bool
	mask         bool
	keyCodes     bool
	useTTY       bool
	historyPath  string
	commandsPath string
)

var rootCmd = &cobra.Command{
	Use:           "demo",
	Short:         "Interactive line editing demo",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `demo reads lines with editline until Ctrl+D or Ctrl+C.

Tab completes commands from the command list, and a hint is shown once a
listed command has been typed. Lines are kept in the history file and
shared with other running demos.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&multiline, "multiline", "m", false, "Wrap long lines over several rows")
	rootCmd.Flags().BoolVar(&mask, "mask", false, "Hide typed characters, as for passwords")
	rootCmd.Flags().BoolVar(&keyCodes, "keycodes", false, "Print the codes sent by each key and exit")
	rootCmd.Flags().BoolVar(&useTTY, "tty", false, "Edit on /dev/tty even when stdin or stdout are redirected")
	rootCmd.Flags().StringVar(&historyPath, "history", editline.DefaultHistoryFile(), "History file")
	rootCmd.Flags().StringVarP(&commandsPath, "commands", "c", "", "YAML command list (default: built-in list)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if keyCodes {
		return editline.PrintKeyCodes(os.Stdin, os.Stdout)
	}

	commands, err := loadCommands(commandsPath)
	if err != nil {
		return err
	}

	history := editline.NewHistory(editline.DefaultHistoryMaxLen)
	if err := history.Load(historyPath); err != nil {
		return err
	}
	if err := history.Save(historyPath); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := history.Watch(ctx, historyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history watcher stopped: %v\n", err)
		}
	}()

	opts := []editline.Option{
		editline.WithMultiline(multiline),
		editline.WithMaskMode(mask),
		editline.WithCompleter(editline.NewFuzzyCompleter(commands.names())),
		editline.WithHinter(commands),
		editline.WithHistory(history),
	}

	for {
		line, err := readLine("demo> ", opts...)
		if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		fmt.Printf("echo: %q\n", line)
		if mask {
			continue
		}
		history.Add(line)
		if err := history.Save(historyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
	}
}

// readLine reads one line on stdin, or on the controlling terminal with --tty.
func readLine(prompt string, opts ...editline.Option) (string, error) {
	if !useTTY {
		return editline.ReadLine(prompt, opts...)
	}

	s, err := editline.StartTTY(prompt, opts...)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", err)
		}
	}()

	for {
		line, err := s.Feed()
		if errors.Is(err, editline.ErrMoreInput) {
			continue
		}
		return line, err
	}
}
