package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// terminalNotifier shows prompts on the terminal. When input is a terminal
// it blocks until the user presses Enter.
type terminalNotifier struct {
	out io.Writer
	in  *os.File
}

func newTerminalNotifier(out io.Writer, in *os.File) *terminalNotifier {
	return &terminalNotifier{out: out, in: in}
}

func (n *terminalNotifier) Inform(ctx context.Context, message string) error {
	if _, err := fmt.Fprintf(n.out, "\n%s\n", message); err != nil {
		return err
	}
	if !isTerminal(n.in) {
		return nil
	}
	if _, err := fmt.Fprint(n.out, "[OK: press Enter] "); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(n.in).ReadString('\n')
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err == io.EOF {
			return nil
		}
		return err
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
