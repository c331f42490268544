package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Prompt() string
	Dispatch(ctx context.Context, line string) (exit bool)
}

// runREPL starts a simple read–eval–print loop for the TesteMatch CLI.
//
// It reads a line from the provided scanner and hands it to a.Dispatch, which
// parses the command, enforces the login requirement for protected commands,
// and reports whether the loop should exit. The loop also exits on scanner
// EOF. Empty lines are skipped.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn(a.Prompt())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if a.Dispatch(ctx, line) {
			return
		}
	}
}
