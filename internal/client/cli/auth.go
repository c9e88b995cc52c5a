package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// now is a seam for session expiry in tests.
var now = time.Now

var errCancelled = errors.New("cancelled")

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.report(err)
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, username, email, string(password))
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Registered %s. Use 'login' to sign in.\n", u.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter user name or email", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword(a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	sess, err := a.api.Login(ctx, identifier, string(password))
	if err != nil {
		return a.report(err)
	}

	sess.LastSearch = a.session.LastSearch
	a.session = sess
	fmt.Fprintf(a.out, "Logged in as %s\n", sess.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	a.session = &client.Session{}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.api.Profile(ctx, a.session)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s, member since %s\n", u.Username, u.Email, u.ID, u.CreatedAt.Format("2006-01-02"))
	return nil
}

// Unregister deletes the account of the logged-in user after confirmation.
func (a *App) Unregister(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(client.ErrNotLoggedIn)
	}
	answer, err := getSimpleText(a.reader, "Delete your account and all your reviews? Type 'yes' to confirm", a.out)
	if err != nil {
		return a.report(err)
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return errCancelled
	}

	if err := a.api.DeleteAccount(ctx, a.session); err != nil {
		return a.report(err)
	}
	a.session = &client.Session{}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
