package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tabz/internal/common"
	"github.com/dmitrijs2005/tabz/internal/logging"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and makes the returned token the
// session token. The password is wiped before returning.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "email", email)
		return err
	}

	a.setMode(ctx, ModeOnline)
	if c != nil && c.Role != "" {
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n", email, c.Role)
	} else {
		fmt.Fprintf(a.out, "Logged in as %s\n", email)
	}
	return nil
}

// Logout stops any running watch and forgets the session token.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.stopWatching()
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI shows the backend's view of the session next to the decoded token.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	me, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "user %d  %s  role=%s\n", me.UserID, me.Email, me.Role)
	if c := a.session.Claims(); c != nil && !c.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token expires %s\n", c.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// BaseURL prints the active backend origin, or switches to the one given.
// A live realtime connection follows the switch.
func (a *App) BaseURL(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, a.session.BaseURL())
		return nil
	}

	url := strings.TrimSpace(args[0])
	a.session.SetBaseURL(ctx, url)
	fmt.Fprintf(a.out, "Base URL set to %s\n", a.session.BaseURL())

	if a.feed.Origin() != "" {
		if err := a.feed.Sync(ctx); err != nil {
			a.log.Warn(ctx, "realtime feed did not follow base url change", logging.Err(err))
		}
	}
	return nil
}
