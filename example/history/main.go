// Package main demonstrates history management with file persistence.
//
// Run it in two terminals at once: lines entered in one show up in the
// other's history, because both watch the same file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nao1215/editline"
)

func main() {
	path := editline.DefaultHistoryFile()

	fmt.Println("History Example with File Persistence")
	fmt.Println("Use Up/Down arrow keys (or Ctrl+P/Ctrl+N) to navigate history")
	fmt.Println("Type 'history' to see command history")
	fmt.Println("Type 'clear' to clear history")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Printf("History is saved to %s\n", path)
	fmt.Println()

	history := editline.NewHistory(1000)
	if err := history.Load(path); err != nil {
		log.Fatal(err)
	}
	// Make sure the directory exists before watching it
	if err := history.Save(path); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := history.Watch(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history watcher stopped: %v\n", err)
		}
	}()

	for {
		result, err := editline.ReadLine("history> ", editline.WithHistory(history))
		if err != nil {
			if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
				fmt.Println("Goodbye!")
				break
			}
			log.Fatal(err)
		}

		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}

		switch result {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "history":
			fmt.Println("Command History:")
			for i, cmd := range history.Entries() {
				fmt.Printf("  %3d: %s\n", i+1, cmd)
			}
			continue
		case "clear":
			history.Clear()
			fmt.Println("History cleared")
		default:
			history.Add(result)
			fmt.Printf("Executed: %s\n", result)
		}

		if err := history.Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
	}
}
