package guard

import (
	"errors"
	"testing"
)

type state struct {
	authed  bool
	loading bool
}

func (s state) IsAuthenticated() bool { return s.authed }
func (s state) Loading() bool         { return s.loading }

func TestGuards(t *testing.T) {
	tests := []struct {
		name      string
		s         state
		authErr   error
		guestErr  error
	}{
		{name: "signed out", s: state{}, authErr: ErrAuthRequired, guestErr: nil},
		{name: "signed in", s: state{authed: true}, authErr: nil, guestErr: ErrGuestOnly},
		{name: "mid restore", s: state{loading: true}, authErr: ErrNotSettled, guestErr: ErrNotSettled},
		{name: "mid login", s: state{authed: true, loading: true}, authErr: ErrNotSettled, guestErr: ErrNotSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RequireAuth(tt.s); !errors.Is(err, tt.authErr) {
				t.Fatalf("RequireAuth() = %v, want %v", err, tt.authErr)
			}
			if err := RequireGuest(tt.s); !errors.Is(err, tt.guestErr) {
				t.Fatalf("RequireGuest() = %v, want %v", err, tt.guestErr)
			}
		})
	}
}
