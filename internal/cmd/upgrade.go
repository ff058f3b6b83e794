package cmd

import (
	"context"
	"fmt"

	"github.com/jfabis/FluffyJobs/internal/guard"
)

type UpgradeCmd struct {
	Confirm   bool  `help:"Mark the account as Pro after the checkout payment completed."`
	Intent    bool  `help:"Create a payment intent and print its client secret, for confirming the card directly instead of the hosted checkout page."`
	TestCards bool  `name:"test-cards" help:"List the payment test cards and exit."`
	Amount    int64 `help:"Charge amount in cents." default:"999"`
}

func (u *UpgradeCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	defer app.Close()

	if u.TestCards {
		cards, err := app.API.TestCards(context.Background())
		if err != nil {
			return err
		}
		for _, card := range cards {
			fmt.Fprintf(ctx.Out, "%s  %s\n", card.Number, card.Description)
		}
		return nil
	}

	if err := guard.RequireAuth(app.Session); err != nil {
		return err
	}
	user, _ := app.Session.User()

	if user.IsPro {
		ctx.UI.Infof("Already a Pro member. %s", ctx.UI.ProBadge())
		return nil
	}

	if u.Confirm {
		if err := app.Session.UpgradeToPro(); err != nil {
			return err
		}
		ctx.UI.Successf("Welcome to FluffyJobs Pro! %s", ctx.UI.ProBadge())
		return nil
	}

	if u.Intent {
		intent, err := app.API.CreatePaymentIntent(context.Background(), u.Amount, user.Email)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "payment intent client secret:\n\n  %s\n\n", intent.ClientSecret)
		fmt.Fprintf(ctx.Out, "Confirm the payment with your card, then run `fluffyjobs upgrade --confirm`.\n")
		return nil
	}

	session, err := app.API.CreateCheckoutSession(context.Background(), u.Amount, user.Email)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Open the checkout page to pay:\n\n  %s\n\n", ctx.UI.Accent(session.URL))
	fmt.Fprintf(ctx.Out, "Then run `fluffyjobs upgrade --confirm` to activate Pro.\n")
	return nil
}
