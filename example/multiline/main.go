// Package main demonstrates multi-line editing, where a line longer than the
// terminal wraps over several rows instead of scrolling sideways.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao1215/editline"
)

func main() {
	fmt.Println("Multiline Editing Example")
	fmt.Println("Type a long line: it wraps at the right margin and stays editable")
	fmt.Println("Type 'mask' to toggle password-style input")
	fmt.Println("Type 'exit' to quit")
	fmt.Println()

	mask := false
	for {
		result, err := editline.ReadLine("multi> ",
			editline.WithMultiline(true),
			editline.WithMaskMode(mask),
		)
		if err != nil {
			if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
				fmt.Println("Goodbye!")
				break
			}
			log.Fatal(err)
		}

		switch strings.TrimSpace(result) {
		case "exit":
			fmt.Println("Goodbye!")
			return
		case "mask":
			mask = !mask
			fmt.Printf("Mask mode: %v\n", mask)
			continue
		}

		fmt.Println("--- Your input ---")
		fmt.Println(result)
		fmt.Printf("Total characters: %d\n", len([]rune(result)))
		fmt.Println("--- End of input ---")
	}
}
