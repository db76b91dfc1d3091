package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"moodmix/internal/shared"
)

func TestValenceRange(t *testing.T) {
	valence := func(v float64) *float64 { return &v }

	t.Run("Contains", func(t *testing.T) {
		r := ValenceRange{Min: 0.5, Max: 1.0}

		if !r.Contains(&TrackCandidate{Valence: valence(0.8)}) {
			t.Error("expected 0.8 to fall within [0.5, 1.0]")
		}
		if !r.Contains(&TrackCandidate{Valence: valence(0.5)}) {
			t.Error("expected lower bound to be inclusive")
		}
		if !r.Contains(&TrackCandidate{Valence: valence(1.0)}) {
			t.Error("expected upper bound to be inclusive")
		}
		if r.Contains(&TrackCandidate{Valence: valence(0.49)}) {
			t.Error("expected 0.49 to fall outside [0.5, 1.0]")
		}
	})

	t.Run("Unavailable Valence Excluded", func(t *testing.T) {
		r := DefaultValenceRange()

		if r.Contains(&TrackCandidate{Valence: nil}) {
			t.Error("expected candidate without valence to be excluded")
		}
	})

	t.Run("Inverted Range Matches Nothing", func(t *testing.T) {
		r := ValenceRange{Min: 0.9, Max: 0.1}

		if r.Contains(&TrackCandidate{Valence: valence(0.5)}) {
			t.Error("expected inverted range to match nothing")
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		r := DefaultValenceRange()
		if r.Min != 0 || r.Max != 1 {
			t.Errorf("expected default range [0, 1], got [%v, %v]", r.Min, r.Max)
		}
	})
}

func TestTrackCandidateJSON(t *testing.T) {
	t.Run("Valence Omitted When Unavailable", func(t *testing.T) {
		data, err := json.Marshal(&TrackCandidate{ID: "t2", Name: "track"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(string(data), "valence") {
			t.Errorf("expected valence to be omitted, got %s", data)
		}
	})

	t.Run("Valence Present When Available", func(t *testing.T) {
		v := 0.8
		data, err := json.Marshal(&TrackCandidate{ID: "t1", Valence: &v})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(data), `"valence":0.8`) {
			t.Errorf("expected valence in payload, got %s", data)
		}
	})
}

func TestNewPlaylistRequest(t *testing.T) {
	t.Run("Empty Track List Rejected", func(t *testing.T) {
		req := &NewPlaylistRequest{Name: "Mix"}

		if err := req.Validate(); !errors.Is(err, shared.ErrEmptyTrackList) {
			t.Errorf("expected ErrEmptyTrackList, got %v", err)
		}
	})

	t.Run("Default Name Applied", func(t *testing.T) {
		req := &NewPlaylistRequest{TrackURIs: []string{"spotify:track:abc"}}

		if err := req.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Name != DefaultPlaylistName {
			t.Errorf("expected default name, got %s", req.Name)
		}
	})

	t.Run("Provided Name Kept", func(t *testing.T) {
		req := &NewPlaylistRequest{Name: "Mix", TrackURIs: []string{"spotify:track:abc"}}

		if err := req.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Name != "Mix" {
			t.Errorf("expected name Mix, got %s", req.Name)
		}
	})
}

func TestAccessCredential(t *testing.T) {
	t.Run("Expired", func(t *testing.T) {
		cred := &AccessCredential{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
		if !cred.Expired() {
			t.Error("expected credential to be expired")
		}
	})

	t.Run("Not Expired", func(t *testing.T) {
		cred := &AccessCredential{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
		if cred.Expired() {
			t.Error("expected credential to be valid")
		}
	})
}
