package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, force bool) error
	Show(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// Commands that prompt for more input read from the same reader, so it is
// never wrapped in a second buffer.
//
//	Not logged in:
//	  - help           show available commands
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - (l)ist         top-rated movies, cached for a while
//	  - refresh        top-rated movies, always from the catalog
//	  - show <id>      movie details
//	  - search <text>  search the catalog
//	  - logout         forget the stored session
//	  - exit | quit    leave the program
//
// Command errors are reported by the handlers themselves; the loop only
// stops on EOF or exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mk%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: (l)ist, refresh, show <id>, search <text>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list", "refresh":
			if !requireLogin(ctx, a) {
				continue
			}
			_ = a.List(ctx, cmd == "refresh")

		case "show":
			if !requireLogin(ctx, a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args)

		case "search":
			if !requireLogin(ctx, a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.Search(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(ctx context.Context, a execIface) bool {
	if a.isLoggedIn(ctx) {
		return true
	}
	printlnFn("Please login first")
	return false
}
