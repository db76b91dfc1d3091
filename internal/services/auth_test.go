package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"moodmix/internal/shared"
)

var testCreds = shared.SpotifyConfig{
	ClientID:     "client_id",
	ClientSecret: "client_secret",
	RedirectURI:  "http://localhost:3000/auth/callback",
}

func TestAuthURL(t *testing.T) {
	auth := NewAuthenticator(testCreds, "", "")

	parsed, err := url.Parse(auth.AuthURL("state123"))
	if err != nil {
		t.Fatalf("failed to parse auth URL: %v", err)
	}

	if parsed.Host != "accounts.spotify.com" {
		t.Errorf("expected accounts host, got %s", parsed.Host)
	}

	query := parsed.Query()
	checks := map[string]string{
		"client_id":     "client_id",
		"response_type": "code",
		"redirect_uri":  "http://localhost:3000/auth/callback",
		"show_dialog":   "true",
		"state":         "state123",
	}
	for key, want := range checks {
		if got := query.Get(key); got != want {
			t.Errorf("expected %s=%s, got %s", key, want, got)
		}
	}

	scope := query.Get("scope")
	for _, want := range []string{"user-read-private", "user-read-email", "playlist-modify-private", "playlist-modify-public"} {
		if !strings.Contains(scope, want) {
			t.Errorf("expected scope to contain %s, got %s", want, scope)
		}
	}
}

func TestExchange(t *testing.T) {
	t.Run("Missing Code Fails Before Network", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("token endpoint should not be called")
		}))
		defer server.Close()

		auth := NewAuthenticator(testCreds, "", server.URL)

		if _, _, err := auth.Exchange(context.Background(), ""); !errors.Is(err, shared.ErrMissingCode) {
			t.Errorf("expected ErrMissingCode, got %v", err)
		}
	})

	t.Run("Returns Credential And Payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if r.Form.Get("client_id") != "client_id" {
				t.Errorf("expected client_id in params, got %s", r.Form.Get("client_id"))
			}

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"tok","token_type":"Bearer","expires_in":1800,"refresh_token":"refresh","scope":"user-read-private"}`)
		}))
		defer server.Close()

		auth := NewAuthenticator(testCreds, "", server.URL)

		cred, payload, err := auth.Exchange(context.Background(), "code123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cred.AccessToken != "tok" || cred.RefreshToken != "refresh" {
			t.Errorf("unexpected credential: %+v", cred)
		}
		if cred.ExpiresAt.Before(time.Now()) {
			t.Error("expected future expiry")
		}
		if payload["expires_in"] != 1800 {
			t.Errorf("expected expires_in 1800, got %v", payload["expires_in"])
		}
		if payload["refresh_token"] != "refresh" {
			t.Errorf("expected refresh_token in payload, got %v", payload)
		}
		if payload["scope"] != "user-read-private" {
			t.Errorf("expected scope in payload, got %v", payload)
		}
	})

	t.Run("Defaults Expiry When Upstream Omits It", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"tok","token_type":"Bearer"}`)
		}))
		defer server.Close()

		auth := NewAuthenticator(testCreds, "", server.URL)

		cred, payload, err := auth.Exchange(context.Background(), "code123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if payload["expires_in"] != 3600 {
			t.Errorf("expected default expires_in 3600, got %v", payload["expires_in"])
		}
		if cred.ExpiresAt.Before(time.Now().Add(30 * time.Minute)) {
			t.Errorf("expected roughly an hour of validity, got %v", cred.ExpiresAt)
		}
	})

	t.Run("Upstream Rejection Carries Details", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"invalid_grant","error_description":"Invalid authorization code"}`)
		}))
		defer server.Close()

		auth := NewAuthenticator(testCreds, "", server.URL)

		_, _, err := auth.Exchange(context.Background(), "bad")

		var exchangeErr *ExchangeError
		if !errors.As(err, &exchangeErr) {
			t.Fatalf("expected ExchangeError, got %v", err)
		}
		if !errors.Is(err, shared.ErrTokenExchange) {
			t.Error("expected error to wrap ErrTokenExchange")
		}

		details, ok := exchangeErr.Details.(map[string]any)
		if !ok {
			t.Fatalf("expected structured details, got %v", exchangeErr.Details)
		}
		if details["error"] != "invalid_grant" {
			t.Errorf("expected upstream error code, got %v", details)
		}
	})

	t.Run("Missing Access Token Fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"token_type":"Bearer"}`)
		}))
		defer server.Close()

		auth := NewAuthenticator(testCreds, "", server.URL)

		if _, _, err := auth.Exchange(context.Background(), "code123"); !errors.Is(err, shared.ErrTokenExchange) {
			t.Errorf("expected ErrTokenExchange, got %v", err)
		}
	})
}
