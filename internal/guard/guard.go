// Package guard gates commands on session state, the CLI equivalent of
// the web app's route guards. Callers must restore the session before
// checking a guard, so a decision is never made on unrestored state;
// ErrNotSettled makes that precondition explicit.
package guard

import "errors"

var (
	// ErrAuthRequired means the command only works signed in.
	ErrAuthRequired = errors.New("you need to be signed in for this; run 'fluffyjobs login'")
	// ErrGuestOnly means the command only makes sense signed out.
	ErrGuestOnly = errors.New("you are already signed in; run 'fluffyjobs logout' first")
	// ErrNotSettled means a guard was consulted mid-restore.
	ErrNotSettled = errors.New("session state not settled yet")
)

// State is the session surface guards decide on.
type State interface {
	IsAuthenticated() bool
	Loading() bool
}

// RequireAuth passes only for a settled, authenticated session.
func RequireAuth(s State) error {
	if s.Loading() {
		return ErrNotSettled
	}
	if !s.IsAuthenticated() {
		return ErrAuthRequired
	}
	return nil
}

// RequireGuest passes only for a settled, unauthenticated session.
func RequireGuest(s State) error {
	if s.Loading() {
		return ErrNotSettled
	}
	if s.IsAuthenticated() {
		return ErrGuestOnly
	}
	return nil
}
