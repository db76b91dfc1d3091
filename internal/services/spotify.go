// Typed Spotify Web API operations built on the raw [Client]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"moodmix/internal/shared"
)

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	URI          string          `json:"uri"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

type playlistTracksPage struct {
	Items []SpotifyPlaylistTrack `json:"items"`
	Total int                    `json:"total"`
}

// Owner identifies the playlist owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner Owner  `json:"owner"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items  []SpotifySimplePlaylist `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Next   *string                 `json:"next"`
}

// SpotifyAudioFeatures represents the audio-feature record of a single track.
type SpotifyAudioFeatures struct {
	ID           string  `json:"id"`
	Valence      float64 `json:"valence"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Tempo        float64 `json:"tempo"`
}

// SpotifyPlaylist represents a full playlist object as returned on creation.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// SpotifyService exposes the Spotify operations the relay consumes on top of
// the raw passthrough [Client]. Every operation takes the caller's bearer
// token; the service itself holds no credential state.
type SpotifyService struct {
	client *Client
}

// NewSpotifyService creates a Spotify service.
//
// baseURL and client follow the defaults of [NewClient].
func NewSpotifyService(baseURL string, client *Client) *SpotifyService {
	if client == nil {
		client = NewClient(baseURL, nil)
	}
	return &SpotifyService{client: client}
}

// UserPlaylistsRaw retrieves the caller's playlists as a raw passthrough response.
func (s *SpotifyService) UserPlaylistsRaw(ctx context.Context, accessToken string) (*Response, error) {
	return s.client.Get(ctx, "/me/playlists", accessToken)
}

// UserPlaylists retrieves the caller's playlists.
// A non-200 upstream status is surfaced as a [shared.StatusError].
func (s *SpotifyService) UserPlaylists(ctx context.Context, accessToken string) ([]SpotifySimplePlaylist, error) {
	resp, err := s.client.Get(ctx, "/me/playlists", accessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, shared.Upstream(shared.ErrUpstream, resp.StatusCode)
	}

	var page SpotifyPaginatedPlaylists
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode playlists: %w", err)
	}

	return page.Items, nil
}

// PlaylistTracks retrieves up to limit tracks of the given playlist.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit int) ([]SpotifyPlaylistTrack, error) {
	path := fmt.Sprintf("/playlists/%s/tracks?limit=%d", url.PathEscape(playlistID), limit)

	resp, err := s.client.Get(ctx, path, accessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, shared.Upstream(shared.ErrUpstream, resp.StatusCode)
	}

	var page playlistTracksPage
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode playlist tracks: %w", err)
	}

	return page.Items, nil
}

// TrackFeatures retrieves the audio-feature record for a single track.
func (s *SpotifyService) TrackFeatures(ctx context.Context, accessToken, trackID string) (*SpotifyAudioFeatures, error) {
	path := fmt.Sprintf("/audio-features/%s", url.PathEscape(trackID))

	resp, err := s.client.Get(ctx, path, accessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, shared.Upstream(shared.ErrUpstream, resp.StatusCode)
	}

	var features SpotifyAudioFeatures
	if err := json.Unmarshal(resp.Body, &features); err != nil {
		return nil, fmt.Errorf("failed to decode audio features: %w", err)
	}

	return &features, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context, accessToken string) (*SpotifyUser, error) {
	resp, err := s.client.Get(ctx, "/me", accessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, shared.Upstream(shared.ErrUpstream, resp.StatusCode)
	}

	var user SpotifyUser
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	return &user, nil
}

// CreatePlaylist creates a playlist on the given user's account.
// An upstream response without an id is reported as [shared.ErrPlaylistCreate].
func (s *SpotifyService) CreatePlaylist(ctx context.Context, accessToken, userID, name, description string, public bool) (*SpotifyPlaylist, error) {
	path := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	resp, err := s.client.Post(ctx, path, accessToken, body)
	if err != nil {
		return nil, err
	}

	var playlist SpotifyPlaylist
	if resp.IsJSON {
		if err := json.Unmarshal(resp.Body, &playlist); err != nil {
			return nil, fmt.Errorf("failed to decode playlist: %w", err)
		}
	}
	if playlist.ID == "" {
		return nil, shared.ErrPlaylistCreate
	}

	return &playlist, nil
}

// AddTracks attaches the given track URIs to a playlist in one batch call.
// Any status other than 201 is reported as a [shared.StatusError] wrapping [shared.ErrTrackAttach].
func (s *SpotifyService) AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error {
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	body := map[string]any{"uris": uris}

	resp, err := s.client.Post(ctx, path, accessToken, body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 201 {
		return shared.Upstream(shared.ErrTrackAttach, resp.StatusCode)
	}

	return nil
}
