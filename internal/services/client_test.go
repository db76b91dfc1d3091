package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockRoundTripper returns a canned response or error for every request.
type mockRoundTripper struct {
	response *http.Response
	err      error
}

func (m *mockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// fCloser simulates a failure when reading a response body
type fCloser struct{}

func (f *fCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *fCloser) Close() error {
	return nil
}

func TestClient(t *testing.T) {
	t.Run("Attaches Bearer Token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		resp, err := client.Get(context.Background(), "/me", "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotAuth != "Bearer tok" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
		if !resp.OK() {
			t.Errorf("expected 2xx, got %d", resp.StatusCode)
		}
	})

	t.Run("Omits Header For Empty Token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		if _, err := client.Get(context.Background(), "/me", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotAuth != "" {
			t.Errorf("expected no authorization header, got %q", gotAuth)
		}
	})

	t.Run("Passes Status And Body Through Verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"status":429,"message":"rate limited"}}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		resp, err := client.Get(context.Background(), "/me/playlists", "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			t.Errorf("expected status 429, got %d", resp.StatusCode)
		}
		if !resp.IsJSON {
			t.Error("expected JSON body to be detected")
		}
		if resp.OK() {
			t.Error("429 must not report OK")
		}
	})

	t.Run("Encodes JSON Body On Post", func(t *testing.T) {
		var gotBody string
		var gotType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			gotBody = string(buf)
			gotType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil)
		resp, err := client.Post(context.Background(), "/playlists/p1/tracks", "tok", map[string]any{"uris": []string{"spotify:track:abc"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected status 201, got %d", resp.StatusCode)
		}
		if gotType != "application/json" {
			t.Errorf("expected JSON content type, got %q", gotType)
		}
		if gotBody != `{"uris":["spotify:track:abc"]}` {
			t.Errorf("unexpected request body: %s", gotBody)
		}
	})

	t.Run("Transport Failure Returns Error", func(t *testing.T) {
		httpClient := &http.Client{
			Transport: &mockRoundTripper{err: errors.New("connection refused")},
		}

		client := NewClient("http://spotify.test", httpClient)
		if _, err := client.Get(context.Background(), "/me", "tok"); err == nil {
			t.Error("expected transport error")
		}
	})

	t.Run("Body Read Failure Returns Error", func(t *testing.T) {
		response := &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       &fCloser{},
		}
		httpClient := &http.Client{
			Transport: &mockRoundTripper{response: response},
		}

		client := NewClient("http://spotify.test", httpClient)
		if _, err := client.Get(context.Background(), "/me", "tok"); err == nil {
			t.Error("expected read error")
		}
	})

	t.Run("Canceled Context Aborts Before Dispatch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient("http://spotify.test", nil)
		if _, err := client.Get(ctx, "/me", "tok"); err == nil {
			t.Error("expected cancellation error")
		}
	})

	t.Run("Defaults Apply", func(t *testing.T) {
		client := NewClient("", nil)

		if client.baseURL != spotifyBaseURL {
			t.Errorf("expected production base URL, got %s", client.baseURL)
		}
		if client.httpClient != http.DefaultClient {
			t.Error("expected default HTTP client")
		}
		if client.timeout != defaultTimeout {
			t.Errorf("expected default timeout, got %v", client.timeout)
		}
	})
}
