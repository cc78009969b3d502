package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/liststate"
)

// TerminalConfirmer asks on Out and reads the answer from In. Only y or ya
// (any case) confirms.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c TerminalConfirmer) Confirm(ctx context.Context, title, message string) bool {
	fmt.Fprintf(c.Out, "%s\n%s [y/N]: ", title, message)
	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(c.In).ReadString('\n')
		answer <- line
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.Out)
		return false
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "ya", "yes":
			return true
		default:
			return false
		}
	}
}

// WriterNotifier prints notifications as single lines.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) NotifySuccess(_ context.Context, message string) {
	fmt.Fprintln(n.W, "✓ "+message)
}

func (n WriterNotifier) NotifyError(_ context.Context, message string) {
	fmt.Fprintln(n.W, "✗ "+message)
}

var (
	_ liststate.Confirmer = TerminalConfirmer{}
	_ liststate.Notifier  = WriterNotifier{}
)
