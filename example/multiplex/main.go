//go:build unix

// Package main demonstrates driving editline from an event loop: the line
// stays editable while the program prints messages of its own above it.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nao1215/editline"
	"golang.org/x/sys/unix"
)

const tick = 2 * time.Second

func main() {
	fmt.Println("Multiplexing Example")
	fmt.Printf("A status line is printed every %s while you type\n", tick)
	fmt.Println("Press Enter to submit, Ctrl+D or Ctrl+C to exit")
	fmt.Println()

	for {
		line, err := readLine("async> ")
		if errors.Is(err, editline.ErrEOF) || errors.Is(err, editline.ErrInterrupted) {
			fmt.Println("Goodbye!")
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("You typed: %s\n", line)
	}
}

// readLine edits one line, waking up every tick to print a status message.
func readLine(prompt string) (string, error) {
	s, err := editline.Start(os.Stdin, os.Stdout, prompt)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal: %v\n", err)
		}
	}()

	fds := []unix.PollFd{{Fd: int32(s.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(tick.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to poll input: %w", err)
		}

		if n == 0 {
			if err := printAbove(s, fmt.Sprintf("[%s] still waiting", time.Now().Format(time.TimeOnly))); err != nil {
				return "", err
			}
			continue
		}

		line, err := s.Feed()
		if errors.Is(err, editline.ErrMoreInput) {
			continue
		}
		return line, err
	}
}

// printAbove erases the prompt, prints msg, and draws the prompt again below
// it. The terminal is in raw mode, so the line ends with \r\n.
func printAbove(s *editline.Session, msg string) error {
	if err := s.Hide(); err != nil {
		return err
	}
	fmt.Print(msg + "\r\n")
	return s.Show()
}
