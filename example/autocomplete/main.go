// Package main demonstrates tab completion and hints.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/editline"
)

// commands lists the commands offered by Tab, with the hint shown once a
// command has been typed.
var commands = map[string]string{
	"help":   "",
	"list":   " [pattern]",
	"create": " <name>",
	"delete": " <name>",
	"update": " <name> <value>",
	"status": "",
	"exit":   "",
}

func names() []string {
	out := make([]string, 0, len(commands))
	for name := range commands {
		out = append(out, name)
	}
	return out
}

// argumentCompleter completes the item names taken by delete and update.
func argumentCompleter(fuzzy editline.Completer) editline.Completer {
	items := []string{"item1", "item2", "item3"}
	return editline.CompleterFunc(func(line string) []string {
		cmd, arg, found := strings.Cut(line, " ")
		if !found {
			return fuzzy.Complete(line)
		}
		if cmd != "delete" && cmd != "update" {
			return nil
		}
		var out []string
		for _, item := range items {
			if strings.HasPrefix(item, arg) {
				out = append(out, cmd+" "+item)
			}
		}
		return out
	})
}

func hinter(line string) (editline.Hint, bool) {
	hint, ok := commands[strings.TrimSpace(line)]
	if !ok || hint == "" {
		return editline.Hint{}, false
	}
	return editline.Hint{Text: hint, Color: editline.ColorGray}, true
}

func main() {
	fmt.Println("Autocomplete Example")
	fmt.Println("====================")
	fmt.Println("Press Tab to complete; press it again for the next candidate")
	fmt.Println("Type 'help' to see available commands")
	fmt.Println("Type 'exit' to quit")
	fmt.Println()

	completer := argumentCompleter(editline.NewFuzzyCompleter(names()))

	for {
		result, err := editline.ReadLine("app> ",
			editline.WithCompleter(completer),
			editline.WithHinter(editline.HinterFunc(hinter)),
		)
		if err != nil {
			if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
				fmt.Println("Goodbye!")
				break
			}
			log.Fatal(err)
		}

		args := strings.Fields(result)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "help":
			fmt.Println("Available commands:")
			fmt.Println("  help    - Show this help")
			fmt.Println("  list    - List items")
			fmt.Println("  create  - Create new item")
			fmt.Println("  delete  - Delete item")
			fmt.Println("  update  - Update item")
			fmt.Println("  status  - Show status")
			fmt.Println("  exit    - Exit program")
		case "status":
			fmt.Println("Status: Running")
		case "list":
			fmt.Println("Items: item1, item2, item3")
		default:
			fmt.Printf("Executed: %s\n", result)
		}
	}
}
