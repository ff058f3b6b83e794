package models

import "strings"

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is the canonical signed-in user record. It is produced exactly once
// per session (login, register, or restore) by normalizing a RawUser;
// consumers never see the backend's raw field soup.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
	IsPro    bool   `json:"is_pro"`
}

// RawUser is a user payload as returned by the backend or by Google's
// userinfo endpoint. The two (and historical backend revisions) disagree on
// which field carries the display name, so all candidates are kept here.
type RawUser struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

// Canonical resolves the display-name fallback chain and returns the
// normalized User. Resolution order: name, first+last, given+family,
// username, then the local part of the email address.
func (r RawUser) Canonical(provider string) User {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = joinName(r.FirstName, r.LastName)
	}
	if name == "" {
		name = joinName(r.GivenName, r.FamilyName)
	}
	if name == "" {
		name = strings.TrimSpace(r.Username)
	}
	if name == "" {
		if at := strings.IndexByte(r.Email, '@'); at > 0 {
			name = r.Email[:at]
		}
	}

	return User{
		ID:       r.ID,
		Email:    strings.TrimSpace(r.Email),
		Name:     name,
		Picture:  strings.TrimSpace(r.Picture),
		Provider: provider,
	}
}

func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
