// Package main provides a small shell with file name completion, built on
// the blocking editline API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nao1215/editline"
)

var builtins = []string{"cat", "cd", "exit", "ls", "pwd"}

// shellCompleter completes builtin names for the first word and file names
// for the arguments.
func shellCompleter() editline.Completer {
	files := editline.NewFileCompleter()
	return editline.CompleterFunc(func(line string) []string {
		if strings.Contains(line, " ") {
			return files.Complete(line)
		}
		var out []string
		for _, name := range builtins {
			if strings.HasPrefix(name, line) {
				out = append(out, name+" ")
			}
		}
		return out
	})
}

func main() {
	fmt.Println("Shell Example")
	fmt.Println("=============")
	fmt.Println("Builtins: ls [path], cd <path>, cat <file>, pwd, exit")
	fmt.Println("Anything else is run as an external command")
	fmt.Println("Use Tab for command and file name completion")
	fmt.Println()

	history := editline.NewHistory(editline.DefaultHistoryMaxLen)
	completer := shellCompleter()

	for {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "unknown"
		}
		prompt := fmt.Sprintf("\x1b[32mshell:%s\x1b[0m> ", filepath.Base(cwd))

		result, err := editline.ReadLine(prompt,
			editline.WithCompleter(completer),
			editline.WithHistory(history),
		)
		if errors.Is(err, editline.ErrInterrupted) {
			continue
		}
		if errors.Is(err, editline.ErrEOF) {
			fmt.Println("Goodbye!")
			return
		}
		if err != nil {
			log.Fatal(err)
		}

		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}
		if result == "exit" {
			fmt.Println("Goodbye!")
			return
		}

		history.Add(result)
		if err := executeCommand(result); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func executeCommand(input string) error {
	words := strings.Fields(input)
	cmd, args := words[0], words[1:]

	switch cmd {
	case "pwd":
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		fmt.Println(cwd)
	case "ls":
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				fmt.Printf("  %s/\n", entry.Name())
			} else {
				fmt.Printf("  %s\n", entry.Name())
			}
		}
	case "cd":
		if len(args) == 0 {
			return errors.New("cd requires a directory argument")
		}
		return os.Chdir(args[0])
	case "cat":
		if len(args) == 0 {
			return errors.New("cat requires a file argument")
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(string(content))
	default:
		// #nosec G204 - This is an example program that intentionally executes user input
		c := exec.CommandContext(context.Background(), cmd, args...)
		c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
		return c.Run()
	}
	return nil
}
