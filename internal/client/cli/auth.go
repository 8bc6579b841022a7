package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moviekeeper/internal/client/services"
	"github.com/dmitrijs2005/moviekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an e-mail and password. Input that fails validation is
// reported inline and returned as a *services.ValidationError.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(a.out, "Login failed: %s\n", ve.Reason)
		} else {
			fmt.Fprintf(a.out, "Login failed: %s\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
