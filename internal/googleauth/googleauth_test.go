package googleauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithEndpoint(server.URL)
	if err != nil {
		t.Fatalf("NewClientWithEndpoint() error = %v", err)
	}
	return client
}

func TestUserInfoSendsBearerAndDecodesProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer gtok" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer gtok")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"108","email":"g@b.com","given_name":"Grace","family_name":"Hopper","picture":"https://p.example/g.png","verified_email":true}`))
	}))

	info, err := client.UserInfo(context.Background(), "gtok")
	if err != nil {
		t.Fatalf("UserInfo() error = %v", err)
	}
	if info.Email != "g@b.com" || info.GivenName != "Grace" || info.FamilyName != "Hopper" {
		t.Fatalf("UserInfo() = %+v", info)
	}

	raw := info.Raw()
	if raw.GivenName != "Grace" || raw.Email != "g@b.com" || raw.Picture != "https://p.example/g.png" {
		t.Fatalf("Raw() = %+v", raw)
	}
}

func TestUserInfoRejectsNonOK(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid Credentials"}}`, http.StatusUnauthorized)
	}))

	if _, err := client.UserInfo(context.Background(), "expired"); err == nil {
		t.Fatal("UserInfo() expected error on 401")
	}
}

func TestUserInfoRejectsMalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	}))

	if _, err := client.UserInfo(context.Background(), "gtok"); err == nil {
		t.Fatal("UserInfo() expected decode error")
	}
}

func TestUserInfoRequiresToken(t *testing.T) {
	requests := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	if _, err := client.UserInfo(context.Background(), "  "); err == nil {
		t.Fatal("UserInfo() expected error for blank token")
	}
	if requests != 0 {
		t.Fatalf("blank token reached the network %d times, want 0", requests)
	}
}
