package agents

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompt is printed before each line of user input.
const Prompt = "You: "

// RunREPL reads lines from in and answers them until "exit", "quit", EOF or
// ctx cancellation. "reset" clears the conversation. A failed turn is
// reported and the loop continues. Cancellation is noticed while waiting for
// input; the reader goroutine exits once in delivers its next line or closes.
func RunREPL(ctx context.Context, editor *Editor, in io.Reader, out io.Writer) error {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(readCtx, in)

	fmt.Fprintln(out, "Type 'exit' or 'quit' to leave, 'reset' to start over.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(out, Prompt)
		var raw string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("error reading input: %w", err)
				}
				return nil
			}
			raw = line
		}

		line := strings.TrimSpace(raw)
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "reset":
			editor.Reset()
			fmt.Fprintln(out, "Conversation cleared.")
			continue
		}

		reply, err := editor.Invoke(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Assistant: %s\n", reply)
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF or on a read
// error, after which readErr yields the scanner error (nil at EOF).
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
