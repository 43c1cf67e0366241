package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Map(ctx context.Context) error
	Add(ctx context.Context, path string) error
	Refresh(ctx context.Context, force bool) error
	Delete(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - list | map     — browse records from the local mirror
//	  - exit | quit    — leave the program
//
//	Logged in, additionally:
//	  - add <path>     — upload a photo and create a record from its GPS tag
//	  - refresh        — re-fetch, honoring the cache window
//	  - refresh!       — re-fetch, bypassing the cache
//	  - delete         — delete a record (interactive id prompt)
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("plants> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, map, add <path>, refresh, refresh!, delete, exit")
			} else {
				printlnFn("Available commands: register, login, list, map, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "map":
			_ = a.Map(ctx)

		case "add":
			if len(parts) < 2 {
				printlnFn("Usage: add <path-to-image>")
				continue
			}
			_ = a.Add(ctx, parts[1])

		case "refresh":
			_ = a.Refresh(ctx, false)

		case "refresh!":
			_ = a.Refresh(ctx, true)

		case "delete":
			_ = a.Delete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
