package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopnet/internal/client/client"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/validation"
)

// getSimpleText and getPassword are indirections used in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, name and password, checks them with the same
// rules as the server and creates the account. A new account has no role
// yet, so the guard sends the user on to account setup.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validation.Registration(email, string(password), name).First(); err != nil {
		return err
	}

	if err := a.store.Register(ctx, email, string(password), name); err != nil {
		return err
	}

	a.println("Success!")
	return a.Navigate(ctx, DashboardPath)
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.logger.Warn(ctx, "login failed", "error", err)
		}
		return err
	}

	a.println("Login successful")
	return a.Navigate(ctx, DashboardPath)
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	a.path = common.LoginPath
	a.println("Logged out")
	return nil
}

// WhoAmI prints the cached user.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.Snapshot()
	if st.User == nil {
		a.println("Not logged in")
		return nil
	}

	u := st.User
	a.println(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	a.println("Account type:", u.AccountType)
	if p := u.Profile; p != nil {
		printField(a, "Phone", p.Phone)
		printField(a, "Address", p.Address)
		printField(a, "Business", p.BusinessName)
		printField(a, "About", p.BusinessDescription)
		printField(a, "Preferences", p.Preferences)
		printField(a, "Photo", p.ProfileImage)
		a.println(fmt.Sprintf("Email notifications: %t, order updates: %t", p.EmailNotifications, p.OrderUpdates))
	}
	return nil
}

func printField(a *App, label, value string) {
	if value != "" {
		a.println(label+":", value)
	}
}

// Refresh trades the refresh token for a new token pair.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}
	if err := a.call(ctx, func() error { return a.store.Refresh(ctx) }); err != nil {
		return err
	}
	a.println("Session refreshed")
	return nil
}
