package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt prefix: the logged-in e-mail, if any.
func (a *App) getStatus(ctx context.Context) string {
	s, ok := a.authService.CurrentSession(ctx)
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", s.Email)
}

// Root greets the user, skipping the login prompt when a session is
// already stored, and then runs the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MovieKeeper (type 'help' for commands)")

	if s, ok := a.authService.CurrentSession(ctx); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Email)
	} else {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
