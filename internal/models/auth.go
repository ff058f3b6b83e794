package models

// Credentials are the email/password pair exchanged for a token pair.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is the sign-up payload. ConfirmPassword is validated
// client-side and never sent over the wire.
type RegisterForm struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// TokenPair holds the opaque tokens issued by the backend. The refresh
// token is persisted but never exchanged; sessions expire outright when
// the access token does.
type TokenPair struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token,omitempty"`
}

// AuthResult is the backend response to login, register and Google auth.
type AuthResult struct {
	Access  string  `json:"access_token"`
	Refresh string  `json:"refresh_token"`
	User    RawUser `json:"user"`
}
