package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgstar/internal/cli"
	"github.com/vvka-141/pgstar/pkg/pgstar"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgstar.ExitPanic)
		}
	}()

	if os.Getenv("PGSTAR_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(pgstar.ExitCodeForError(err))
	}
}
