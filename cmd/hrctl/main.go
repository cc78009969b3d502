package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

func main() {
	if code := runMain(Execute, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	err := execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "dibatalkan")
		return 130
	default:
		fmt.Fprintln(stderr, shared.UserMessage(err, err.Error()))
		return 1
	}
}
