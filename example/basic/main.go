// Package main demonstrates basic usage of the editline library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/editline"
)

func main() {
	fmt.Println("Basic Line Editing Example")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Println("Press Ctrl+D on an empty line or Ctrl+C to exit")
	fmt.Println()

	for {
		result, err := editline.ReadLine(">>> ")
		if err != nil {
			if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
				fmt.Println("Goodbye!")
				break
			}
			log.Fatal(err)
		}

		// Handle exit commands
		if result == "exit" || result == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Printf("You typed: %s\n", result)
	}
}
