package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jfabis/FluffyJobs/internal/api"
	"github.com/jfabis/FluffyJobs/internal/googleauth"
	"github.com/jfabis/FluffyJobs/internal/guard"
	"github.com/jfabis/FluffyJobs/internal/models"
	"github.com/jfabis/FluffyJobs/internal/session"
)

type LoginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"FLUFFYJOBS_PASSWORD" help:"Account password."`
}

func (l *LoginCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireGuest(app.Session); err != nil {
		return err
	}

	if err := app.Session.Login(context.Background(), l.Email, l.Password); err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	user, _ := app.Session.User()
	ctx.UI.Successf("Signed in as %s", user.Email)
	return nil
}

type RegisterCmd struct {
	Name            string `help:"Display name."`
	Email           string `required:"" help:"Account email."`
	Password        string `required:"" env:"FLUFFYJOBS_PASSWORD" help:"Account password."`
	ConfirmPassword string `required:"" help:"Password confirmation."`
}

func (r *RegisterCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireGuest(app.Session); err != nil {
		return err
	}

	form := models.RegisterForm{
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
	if err := app.Session.Register(context.Background(), form); err != nil {
		if errors.Is(err, session.ErrPasswordMismatch) {
			return fmt.Errorf("passwords do not match")
		}
		return err
	}

	user, _ := app.Session.User()
	ctx.UI.Successf("Account created, signed in as %s", user.Email)
	return nil
}

type GoogleLoginCmd struct {
	AccessToken  string `help:"Google OAuth access token; the profile is fetched from the userinfo endpoint." xor:"source"`
	Credential   string `help:"Google ID token (One Tap credential)." xor:"source"`
	UserInfoFile string `help:"Path to a pre-fetched Google userinfo JSON file." xor:"source"`
}

func (g *GoogleLoginCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireGuest(app.Session); err != nil {
		return err
	}

	result := session.GoogleResult{
		AccessToken: g.AccessToken,
		Credential:  g.Credential,
		ClientID:    ctx.Config.GoogleClientID,
	}
	if g.UserInfoFile != "" {
		data, err := os.ReadFile(g.UserInfoFile)
		if err != nil {
			return fmt.Errorf("read --user-info-file: %w", err)
		}
		var info googleauth.UserInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("parse --user-info-file: %w", err)
		}
		result.UserInfo = &info
	}

	if err := app.Session.GoogleLogin(context.Background(), result); err != nil {
		return err
	}

	user, _ := app.Session.User()
	ctx.UI.Successf("Signed in with Google as %s", user.Email)
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Session.IsAuthenticated() {
		ctx.UI.Infof("Not signed in.")
		return nil
	}
	app.Session.Logout()
	ctx.UI.Successf("Signed out.")
	return nil
}

type WhoamiCmd struct {
	Refresh bool `help:"Re-fetch the profile from the backend instead of using the cached record."`
}

func (w *WhoamiCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}

	if w.Refresh {
		if err := app.Session.Refresh(context.Background()); err != nil {
			return err
		}
	}

	user, _ := app.Session.User()
	badge := ""
	if user.IsPro {
		badge = " " + ctx.UI.ProBadge()
	}
	fmt.Fprintf(ctx.Out, "%s <%s>%s\n", user.Name, ctx.UI.Accent(user.Email), badge)
	fmt.Fprintf(ctx.Out, "id: %d  provider: %s\n", user.ID, user.Provider)

	if exp, ok := app.Session.TokenExpiry(); ok {
		if time.Now().After(exp) {
			ctx.UI.Warnf("Access token expired %s; sign in again.", exp.Format(time.RFC3339))
		} else {
			fmt.Fprintf(ctx.Out, "token expires: %s\n", exp.Format(time.RFC3339))
		}
	}
	return nil
}
