package api

import (
	"context"
	"net/http"
)

// CheckoutSession points at the payment provider's hosted checkout page.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type checkoutRequest struct {
	Amount    int64  `json:"amount"`
	UserEmail string `json:"user_email"`
}

// CreateCheckoutSession asks the backend for a hosted checkout URL for the
// Pro upgrade. Amount is in the currency's minor unit.
func (c *Client) CreateCheckoutSession(ctx context.Context, amount int64, userEmail string) (CheckoutSession, error) {
	var session CheckoutSession
	req := checkoutRequest{Amount: amount, UserEmail: userEmail}
	err := c.doJSON(ctx, http.MethodPost, "/payments/create-checkout-session/", nil, req, &session, true)
	return session, err
}

// PaymentIntent is the client-confirmable intent for in-place card entry.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, userEmail string) (PaymentIntent, error) {
	var intent PaymentIntent
	req := checkoutRequest{Amount: amount, UserEmail: userEmail}
	err := c.doJSON(ctx, http.MethodPost, "/payments/create-payment-intent/", nil, req, &intent, true)
	return intent, err
}

// TestCard is a payment-provider test card exposed by the sandbox backend.
type TestCard struct {
	Number      string `json:"number"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

func (c *Client) TestCards(ctx context.Context) ([]TestCard, error) {
	var payload struct {
		TestCards []TestCard `json:"test_cards"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/payments/test-cards/", nil, nil, &payload, false); err != nil {
		return nil, err
	}
	return payload.TestCards, nil
}
