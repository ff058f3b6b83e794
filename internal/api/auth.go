package api

import (
	"context"
	"net/http"

	"github.com/jfabis/FluffyJobs/internal/models"
)

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var result models.AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/auth/login/", nil, creds, &result, false)
	return result, err
}

func (c *Client) Register(ctx context.Context, form models.RegisterForm) (models.AuthResult, error) {
	var result models.AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/users/register/", nil, form, &result, false)
	return result, err
}

// googleAuthRequest forwards either a Google credential (ID token) or a
// raw access token; the backend accepts both shapes.
type googleAuthRequest struct {
	Credential  string `json:"credential,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	ClientID    string `json:"client_id,omitempty"`
}

func (c *Client) GoogleAuth(ctx context.Context, credential, accessToken, clientID string) (models.AuthResult, error) {
	var result models.AuthResult
	req := googleAuthRequest{Credential: credential, AccessToken: accessToken, ClientID: clientID}
	err := c.doJSON(ctx, http.MethodPost, "/auth/google/", nil, req, &result, false)
	return result, err
}

func (c *Client) CurrentUser(ctx context.Context) (models.RawUser, error) {
	var user models.RawUser
	err := c.doJSON(ctx, http.MethodGet, "/auth/user/", nil, nil, &user, true)
	return user, err
}
