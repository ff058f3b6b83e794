// Package session is the single source of truth for "who is signed in".
// It owns the canonical User record, persists the token pair and user via
// the storage adapter, and reattaches Pro entitlement on every restore
// and login (the persisted user record does not carry it).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jfabis/FluffyJobs/internal/entitlement"
	"github.com/jfabis/FluffyJobs/internal/googleauth"
	"github.com/jfabis/FluffyJobs/internal/models"
	"github.com/jfabis/FluffyJobs/internal/storage"
)

// ErrPasswordMismatch is the local register-form validation failure. It is
// returned before any network call is made.
var ErrPasswordMismatch = errors.New("session: passwords do not match")

// ErrNotAuthenticated guards operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// AuthAPI is the slice of the backend client the session depends on.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error)
	Register(ctx context.Context, form models.RegisterForm) (models.AuthResult, error)
	GoogleAuth(ctx context.Context, credential, accessToken, clientID string) (models.AuthResult, error)
	CurrentUser(ctx context.Context) (models.RawUser, error)
}

// UserInfoFetcher resolves a Google access token to a profile, for the
// login flow where only the token is in hand.
type UserInfoFetcher interface {
	UserInfo(ctx context.Context, accessToken string) (googleauth.UserInfo, error)
}

// GoogleResult is the OAuth outcome handed to GoogleLogin. Exactly one of
// the two supported shapes applies: a pre-fetched profile, or an access
// token that still needs the userinfo round-trip.
type GoogleResult struct {
	Credential  string
	AccessToken string
	UserInfo    *googleauth.UserInfo
	ClientID    string
}

type Session struct {
	mu      sync.Mutex
	user    *models.User
	loading bool

	store  *storage.SessionStore
	api    AuthAPI
	google UserInfoFetcher
	pro    entitlement.Store
	logger zerolog.Logger
}

type Options struct {
	Store  *storage.SessionStore
	API    AuthAPI
	Google UserInfoFetcher
	Pro    entitlement.Store
	Logger zerolog.Logger
}

func New(opts Options) *Session {
	return &Session{
		store:  opts.Store,
		api:    opts.API,
		google: opts.Google,
		pro:    opts.Pro,
		logger: opts.Logger,
	}
}

// IsAuthenticated derives from the user pointer, so the
// authenticated-iff-user-present invariant cannot be violated.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// User returns a copy of the current user and whether one is signed in.
func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// AccessToken feeds the API client's token source.
func (s *Session) AccessToken() string {
	return s.store.AccessToken()
}

func (s *Session) beginLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *Session) endLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Restore re-enters the session persisted by a previous run. Corrupt or
// partial state is cleared and treated as signed out; Restore itself never
// fails on bad stored data.
func (s *Session) Restore() {
	s.beginLoading()
	defer s.endLoading()

	if _, err := s.store.Tokens(); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().Err(err).Msg("token read failed, treating as signed out")
		}
		return
	}

	user, err := s.store.User()
	if err != nil {
		// A token without a readable user record is useless; drop both.
		s.logger.Warn().Err(err).Msg("stored session unreadable, clearing")
		s.store.ClearSession()
		return
	}

	user.IsPro = s.pro.Has(user.ID)
	s.setUser(user)
	s.logger.Debug().Int64("user_id", user.ID).Msg("session restored")
}

// Login exchanges credentials for a token pair and authenticates.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.beginLoading()
	defer s.endLoading()

	result, err := s.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	return s.establish(result, models.ProviderEmail)
}

// Register validates the confirmation password locally, then signs up and
// authenticates like Login.
func (s *Session) Register(ctx context.Context, form models.RegisterForm) error {
	if form.Password != form.ConfirmPassword {
		return ErrPasswordMismatch
	}

	s.beginLoading()
	defer s.endLoading()

	result, err := s.api.Register(ctx, form)
	if err != nil {
		return err
	}
	return s.establish(result, models.ProviderEmail)
}

// GoogleLogin completes an OAuth sign-in. When only an access token is
// provided, the Google profile is fetched first; the backend exchange then
// issues this app's own token pair.
func (s *Session) GoogleLogin(ctx context.Context, result GoogleResult) error {
	s.beginLoading()
	defer s.endLoading()

	info := result.UserInfo
	if info == nil && result.AccessToken != "" {
		if s.google == nil {
			return fmt.Errorf("session: google userinfo fetcher not configured")
		}
		fetched, err := s.google.UserInfo(ctx, result.AccessToken)
		if err != nil {
			return err
		}
		info = &fetched
	}
	if info == nil && result.Credential == "" {
		return fmt.Errorf("session: google login needs a credential, an access token, or a profile")
	}

	auth, err := s.api.GoogleAuth(ctx, result.Credential, result.AccessToken, result.ClientID)
	if err != nil {
		return err
	}
	// Older backend revisions return tokens without a profile; fall back
	// to the Google one.
	if auth.User.Email == "" && info != nil {
		raw := info.Raw()
		raw.ID = auth.User.ID
		auth.User = raw
	}
	return s.establish(auth, models.ProviderGoogle)
}

// establish persists the auth result and flips the in-memory state. Name
// normalization and Pro reattachment happen here, once, for every provider.
func (s *Session) establish(result models.AuthResult, provider string) error {
	user := result.User.Canonical(provider)
	user.IsPro = s.pro.Has(user.ID)

	if err := s.store.SetTokens(models.TokenPair{Access: result.Access, Refresh: result.Refresh}); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}
	if err := s.store.SetUser(user); err != nil {
		s.store.ClearSession()
		return fmt.Errorf("persist user: %w", err)
	}

	s.setUser(user)
	s.logger.Info().Int64("user_id", user.ID).Str("provider", provider).Msg("signed in")
	return nil
}

// Logout clears persisted tokens and the user record. Pro entitlement side
// keys are left alone so the same user gets their entitlement back on the
// next login.
// Refresh re-fetches the profile from the backend with the stored token
// and replaces the cached user record. Tokens are untouched: the backend
// reissues nothing on this endpoint.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	provider := s.user.Provider
	s.mu.Unlock()

	s.beginLoading()
	defer s.endLoading()

	raw, err := s.api.CurrentUser(ctx)
	if err != nil {
		return err
	}

	user := raw.Canonical(provider)
	user.IsPro = s.pro.Has(user.ID)
	if err := s.store.SetUser(user); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.setUser(user)
	return nil
}

func (s *Session) Logout() {
	s.store.ClearSession()
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.logger.Info().Msg("signed out")
}

// ForceLogout is the API client's 401 hook: the backend no longer accepts
// our token, so the session is over regardless of local state.
func (s *Session) ForceLogout() {
	s.logger.Warn().Msg("session expired, signing out")
	s.Logout()
}

// UpgradeToPro records entitlement for the current user. This trusts the
// client by design; the payment provider's redirect is expected to drive
// this call after a completed checkout.
func (s *Session) UpgradeToPro() error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	user := *s.user
	s.mu.Unlock()

	if err := s.pro.Grant(user.ID); err != nil {
		return err
	}
	user.IsPro = true
	if err := s.store.SetUser(user); err != nil {
		return err
	}

	s.setUser(user)
	s.logger.Info().Int64("user_id", user.ID).Msg("upgraded to pro")
	return nil
}

func (s *Session) setUser(user models.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}
