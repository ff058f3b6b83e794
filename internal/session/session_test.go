package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jfabis/FluffyJobs/internal/entitlement"
	"github.com/jfabis/FluffyJobs/internal/googleauth"
	"github.com/jfabis/FluffyJobs/internal/models"
	"github.com/jfabis/FluffyJobs/internal/storage"
)

type stubAPI struct {
	loginResult    models.AuthResult
	loginErr       error
	registerResult models.AuthResult
	registerErr    error
	googleResult   models.AuthResult
	googleErr      error
	currentUser    models.RawUser
	currentErr     error

	loginCalls    int
	registerCalls int
	googleCalls   int
	currentCalls  int

	// observe lets tests assert the loading flag mid-flight.
	observe func()
}

func (s *stubAPI) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	s.loginCalls++
	if s.observe != nil {
		s.observe()
	}
	return s.loginResult, s.loginErr
}

func (s *stubAPI) Register(ctx context.Context, form models.RegisterForm) (models.AuthResult, error) {
	s.registerCalls++
	if s.observe != nil {
		s.observe()
	}
	return s.registerResult, s.registerErr
}

func (s *stubAPI) GoogleAuth(ctx context.Context, credential, accessToken, clientID string) (models.AuthResult, error) {
	s.googleCalls++
	if s.observe != nil {
		s.observe()
	}
	return s.googleResult, s.googleErr
}

func (s *stubAPI) CurrentUser(ctx context.Context) (models.RawUser, error) {
	s.currentCalls++
	if s.observe != nil {
		s.observe()
	}
	return s.currentUser, s.currentErr
}

type stubFetcher struct {
	info googleauth.UserInfo
	err  error
}

func (s *stubFetcher) UserInfo(ctx context.Context, accessToken string) (googleauth.UserInfo, error) {
	return s.info, s.err
}

func newTestSession(t *testing.T, api AuthAPI, google UserInfoFetcher) (*Session, *storage.SessionStore) {
	t.Helper()
	kv, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	store := storage.NewSessionStore(kv)
	sess := New(Options{
		Store:  store,
		API:    api,
		Google: google,
		Pro:    entitlement.NewKVStore(kv),
		Logger: zerolog.Nop(),
	})
	return sess, store
}

func authOK(id int64, email string) models.AuthResult {
	return models.AuthResult{
		Access:  "tok1",
		Refresh: "ref1",
		User:    models.RawUser{ID: id, Email: email},
	}
}

func TestLoginSuccess(t *testing.T) {
	api := &stubAPI{loginResult: authOK(1, "a@b.com")}
	sess, store := newTestSession(t, api, nil)

	if err := sess.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false after successful login")
	}
	if tok := store.AccessToken(); tok != "tok1" {
		t.Fatalf("stored access token = %q, want %q", tok, "tok1")
	}
	// The session is the API client's token source.
	if tok := sess.AccessToken(); tok != "tok1" {
		t.Fatalf("AccessToken() = %q, want %q", tok, "tok1")
	}
	user, ok := sess.User()
	if !ok || user.Email != "a@b.com" {
		t.Fatalf("User() = (%+v, %v)", user, ok)
	}
	// No explicit name anywhere: falls back to the email local part.
	if user.Name != "a" {
		t.Fatalf("User().Name = %q, want %q", user.Name, "a")
	}
}

func TestLoadingSettlesOnEveryPath(t *testing.T) {
	api := &stubAPI{
		loginErr:    errors.New("boom"),
		registerErr: errors.New("boom"),
		googleErr:   errors.New("boom"),
	}
	sess, _ := newTestSession(t, api, &stubFetcher{err: errors.New("userinfo down")})

	sawLoading := false
	api.observe = func() {
		if sess.Loading() {
			sawLoading = true
		}
	}

	ctx := context.Background()
	_ = sess.Login(ctx, "a@b.com", "x")
	_ = sess.Register(ctx, models.RegisterForm{Email: "a@b.com", Password: "x", ConfirmPassword: "x"})
	_ = sess.GoogleLogin(ctx, GoogleResult{Credential: "jwt"})
	_ = sess.GoogleLogin(ctx, GoogleResult{AccessToken: "gtok"}) // fetcher fails before API
	sess.Restore()

	if !sawLoading {
		t.Fatal("loading flag never observed true during an in-flight call")
	}
	if sess.Loading() {
		t.Fatal("Loading() = true after all calls settled")
	}
	if sess.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = true after failures only")
	}
}

func TestRegisterPasswordMismatchFailsBeforeNetwork(t *testing.T) {
	api := &stubAPI{}
	sess, _ := newTestSession(t, api, nil)

	err := sess.Register(context.Background(), models.RegisterForm{
		Email: "a@b.com", Password: "x", ConfirmPassword: "y",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Register() error = %v, want ErrPasswordMismatch", err)
	}
	if api.registerCalls != 0 {
		t.Fatalf("register API called %d times, want 0", api.registerCalls)
	}
	if sess.Loading() {
		t.Fatal("Loading() = true after local validation failure")
	}
}

func TestRestoreWithCorruptUserClearsSession(t *testing.T) {
	sess, store := newTestSession(t, &stubAPI{}, nil)

	if err := store.SetTokens(models.TokenPair{Access: "tok1"}); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if err := store.KV().Set(storage.KeyUserData, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	sess.Restore()

	if sess.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = true after corrupt restore")
	}
	if sess.Loading() {
		t.Fatal("Loading() = true after restore settled")
	}
	if tok := store.AccessToken(); tok != "" {
		t.Fatalf("access token survived corrupt restore: %q", tok)
	}
}

func TestRestoreReattachesProStatus(t *testing.T) {
	api := &stubAPI{loginResult: authOK(7, "pro@b.com")}
	sess, store := newTestSession(t, api, nil)

	if err := sess.Login(context.Background(), "pro@b.com", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := sess.UpgradeToPro(); err != nil {
		t.Fatalf("UpgradeToPro() error = %v", err)
	}

	// Fresh session over the same storage, as after a process restart.
	restarted := New(Options{
		Store:  store,
		API:    api,
		Pro:    entitlement.NewKVStore(store.KV()),
		Logger: zerolog.Nop(),
	})
	restarted.Restore()

	user, ok := restarted.User()
	if !ok {
		t.Fatal("User() not present after restore")
	}
	if !user.IsPro {
		t.Fatal("IsPro = false after restore, entitlement side key not reattached")
	}
}

func TestProEntitlementSurvivesLogout(t *testing.T) {
	api := &stubAPI{loginResult: authOK(7, "pro@b.com")}
	sess, _ := newTestSession(t, api, nil)
	ctx := context.Background()

	if err := sess.Login(ctx, "pro@b.com", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := sess.UpgradeToPro(); err != nil {
		t.Fatalf("UpgradeToPro() error = %v", err)
	}

	sess.Logout()
	if sess.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = true after logout")
	}

	if err := sess.Login(ctx, "pro@b.com", "x"); err != nil {
		t.Fatalf("Login() (2nd) error = %v", err)
	}
	user, _ := sess.User()
	if !user.IsPro {
		t.Fatal("IsPro = false after re-login, entitlement did not survive logout")
	}
}

func TestUpgradeToProRequiresAuth(t *testing.T) {
	sess, _ := newTestSession(t, &stubAPI{}, nil)
	if err := sess.UpgradeToPro(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("UpgradeToPro() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestGoogleLoginWithAccessTokenFetchesProfile(t *testing.T) {
	api := &stubAPI{
		// Backend revision that returns tokens but no profile.
		googleResult: models.AuthResult{Access: "tok1", Refresh: "ref1", User: models.RawUser{ID: 5}},
	}
	fetcher := &stubFetcher{info: googleauth.UserInfo{
		Email: "g@b.com", GivenName: "Grace", FamilyName: "Hopper", Picture: "http://p",
	}}
	sess, _ := newTestSession(t, api, fetcher)

	if err := sess.GoogleLogin(context.Background(), GoogleResult{AccessToken: "gtok"}); err != nil {
		t.Fatalf("GoogleLogin() error = %v", err)
	}

	user, ok := sess.User()
	if !ok {
		t.Fatal("not authenticated after google login")
	}
	if user.Provider != models.ProviderGoogle {
		t.Fatalf("Provider = %q, want %q", user.Provider, models.ProviderGoogle)
	}
	if user.Name != "Grace Hopper" || user.Email != "g@b.com" || user.ID != 5 {
		t.Fatalf("User() = %+v", user)
	}
}

func TestGoogleLoginUserInfoFailure(t *testing.T) {
	api := &stubAPI{googleResult: authOK(5, "g@b.com")}
	sess, _ := newTestSession(t, api, &stubFetcher{err: errors.New("userinfo down")})

	err := sess.GoogleLogin(context.Background(), GoogleResult{AccessToken: "gtok"})
	if err == nil {
		t.Fatal("GoogleLogin() expected error")
	}
	if api.googleCalls != 0 {
		t.Fatalf("backend exchange attempted %d times after userinfo failure, want 0", api.googleCalls)
	}
	if sess.Loading() {
		t.Fatal("Loading() = true after failed google login")
	}
}

func TestRefreshUpdatesUserFromBackend(t *testing.T) {
	api := &stubAPI{
		loginResult: authOK(1, "a@b.com"),
		currentUser: models.RawUser{ID: 1, Email: "a@b.com", Name: "Ada Lovelace"},
	}
	sess, store := newTestSession(t, api, nil)

	if err := sess.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if api.currentCalls != 1 {
		t.Fatalf("current-user API called %d times, want 1", api.currentCalls)
	}

	user, _ := sess.User()
	if user.Name != "Ada Lovelace" {
		t.Fatalf("User().Name = %q, want backend's update", user.Name)
	}
	if user.Provider != models.ProviderEmail {
		t.Fatalf("Provider = %q, refresh must not rewrite it", user.Provider)
	}

	// The persisted record reflects the refresh too.
	persisted, err := store.User()
	if err != nil {
		t.Fatalf("store.User() error = %v", err)
	}
	if persisted.Name != "Ada Lovelace" {
		t.Fatalf("persisted Name = %q, want backend's update", persisted.Name)
	}
	if tok := store.AccessToken(); tok != "tok1" {
		t.Fatalf("access token = %q, refresh must not touch tokens", tok)
	}
	if sess.Loading() {
		t.Fatal("Loading() = true after refresh settled")
	}
}

func TestRefreshRequiresAuth(t *testing.T) {
	api := &stubAPI{}
	sess, _ := newTestSession(t, api, nil)

	if err := sess.Refresh(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Refresh() error = %v, want ErrNotAuthenticated", err)
	}
	if api.currentCalls != 0 {
		t.Fatalf("current-user API called %d times while signed out, want 0", api.currentCalls)
	}
}
