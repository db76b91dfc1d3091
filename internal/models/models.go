// package models defines the data model for the valence-filter relay
package models

import (
	"time"

	"moodmix/internal/shared"
)

// DefaultPlaylistName is used when a playlist creation request omits a name.
const DefaultPlaylistName = "New Filtered Playlist"

// AccessCredential is the result of an authorization-code exchange.
//
// It lives for the duration of a single request/response cycle; the relay
// never persists it and every protected route re-reads the bearer token from
// the Authorization header. Must not be logged.
type AccessCredential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the credential's access token has passed its expiry.
func (c *AccessCredential) Expired() bool {
	return time.Now().After(c.ExpiresAt)
}

// TrackCandidate is a track joined with its audio-feature record.
//
// Valence is nil when the upstream feature lookup failed for the track; such
// candidates never pass a range test.
type TrackCandidate struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artist  string   `json:"artist"`
	URI     string   `json:"uri"`
	URL     string   `json:"url"`
	Valence *float64 `json:"valence,omitempty"`
}

// ValenceRange holds caller-supplied filter bounds, both ends inclusive.
//
// Min > Max is not rejected; an inverted range simply matches nothing.
type ValenceRange struct {
	Min float64
	Max float64
}

// DefaultValenceRange covers the full valence domain [0, 1].
func DefaultValenceRange() ValenceRange {
	return ValenceRange{Min: 0, Max: 1}
}

// Contains reports whether the candidate's valence falls within the range.
// Candidates without a determinable valence are always excluded.
func (r ValenceRange) Contains(c *TrackCandidate) bool {
	if c.Valence == nil {
		return false
	}
	return r.Min <= *c.Valence && *c.Valence <= r.Max
}

// NewPlaylistRequest is the body of a playlist creation call.
type NewPlaylistRequest struct {
	Name      string   `json:"name"`
	TrackURIs []string `json:"track_uris"`
}

// Validate rejects an empty track list and applies the default name.
// Runs before any network call is made.
func (p *NewPlaylistRequest) Validate() error {
	if len(p.TrackURIs) == 0 {
		return shared.ErrEmptyTrackList
	}
	if p.Name == "" {
		p.Name = DefaultPlaylistName
	}
	return nil
}
