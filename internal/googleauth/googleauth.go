// Package googleauth fetches Google userinfo for the access-token login
// flow, where the caller holds an OAuth access token but no profile yet.
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/jfabis/FluffyJobs/internal/models"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserInfo is Google's oauth2/v2 userinfo payload.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}

// Raw converts the Google profile to the shared raw-user shape so the
// session container normalizes every provider the same way.
func (u UserInfo) Raw() models.RawUser {
	return models.RawUser{
		Email:      u.Email,
		Name:       u.Name,
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Picture:    u.Picture,
	}
}

type Client struct {
	http     tls_client.HttpClient
	endpoint string
}

func NewClient() (*Client, error) {
	httpClient, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(10),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: httpClient, endpoint: userInfoEndpoint}, nil
}

// NewClientWithEndpoint exists for tests.
func NewClientWithEndpoint(endpoint string) (*Client, error) {
	client, err := NewClient()
	if err != nil {
		return nil, err
	}
	client.endpoint = endpoint
	return client, nil
}

// UserInfo exchanges an OAuth access token for the holder's profile.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (UserInfo, error) {
	if strings.TrimSpace(accessToken) == "" {
		return UserInfo{}, fmt.Errorf("googleauth: access token is required")
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, c.endpoint, nil)
	if err != nil {
		return UserInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return UserInfo{}, fmt.Errorf("googleauth: userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fhttp.StatusOK {
		return UserInfo{}, fmt.Errorf("googleauth: userinfo http %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, fmt.Errorf("googleauth: decode userinfo: %w", err)
	}
	return info, nil
}
