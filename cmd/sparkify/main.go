package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/cli"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(sparkify.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(sparkify.ExitCodeForError(err))
	}
}
