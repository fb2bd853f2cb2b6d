package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/smarttask/internal/client/client"
	"github.com/dmitrijs2005/smarttask/internal/client/views"
	"github.com/dmitrijs2005/smarttask/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Alert texts.
const (
	MsgInvalidCredentials = "Invalid credentials!"
	MsgRegistrationFailed = "Registration failed!"
	MsgServerUnavailable  = "Server unavailable, try again later."
)

func (a *App) readCredentials(ctx context.Context, withName bool) (credentials, error) {
	var c credentials
	if a.forms {
		if !withName {
			c.Email = a.session.LastEmail(ctx)
		}
		return c, fillCredentials(&c, withName)
	}

	var err error
	if withName {
		if c.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
			return c, err
		}
		if c.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return c, err
		}
	} else {
		if c.Email, err = GetTextWithDefault(a.reader, "Enter email", a.session.LastEmail(ctx), a.out); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (a *App) readPassword(c *credentials) ([]byte, error) {
	if a.forms {
		return []byte(c.Password), nil
	}
	return getPassword(a.out)
}

// Register prompts for name, email and password and creates an account.
// A failure is shown as the registration alert; the session never changes.
func (a *App) Register(ctx context.Context) error {
	v := a.view(ctx)
	a.println(v.RegisterHeader())

	c, err := a.readCredentials(ctx, true)
	if err != nil {
		return err
	}
	password, err := a.readPassword(&c)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, c.Name, c.Email, password); err != nil {
		return a.alert(ctx, MsgRegistrationFailed, err)
	}

	a.println(v.Info("Registration successful! Please log in."))
	return nil
}

// Login prompts for credentials and signs in. Bad credentials are reported
// with the credentials alert and leave the session unchanged.
func (a *App) Login(ctx context.Context) error {
	v := a.view(ctx)
	a.println(v.LoginHeader())

	c, err := a.readCredentials(ctx, false)
	if err != nil {
		return err
	}
	password, err := a.readPassword(&c)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, c.Email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return a.alert(ctx, MsgServerUnavailable, err)
		}
		return a.alert(ctx, MsgInvalidCredentials, err)
	}

	a.println(v.Info("Welcome, " + a.session.Snapshot().User.DisplayName() + "!"))
	return nil
}

// Logout forgets the session and the stored token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.session.WaitResolved(ctx); err != nil {
		return err
	}
	s := a.session.Snapshot()
	if s.User == nil {
		a.println("Not logged in.")
		return nil
	}
	a.println(s.User.DisplayName(), "<"+s.User.Email+">")
	return nil
}

// Home prints the navbar and the landing banner.
func (a *App) Home(ctx context.Context) error {
	v := a.view(ctx)
	a.println(v.Navbar(views.RouteHome, a.session.Snapshot().User))
	a.println(v.Home())
	return nil
}
