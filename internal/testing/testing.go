// package testing contains shared testing utilities
package testing

import (
	"context"

	"moodmix/internal/services"
)

// MockCatalog is a test double for the catalog interface consumed by the task
// engines. Unset function fields return zero values.
type MockCatalog struct {
	UserPlaylistsFn  func(ctx context.Context, accessToken string) ([]services.SpotifySimplePlaylist, error)
	PlaylistTracksFn func(ctx context.Context, accessToken, playlistID string, limit int) ([]services.SpotifyPlaylistTrack, error)
	TrackFeaturesFn  func(ctx context.Context, accessToken, trackID string) (*services.SpotifyAudioFeatures, error)
	CurrentUserFn    func(ctx context.Context, accessToken string) (*services.SpotifyUser, error)
	CreatePlaylistFn func(ctx context.Context, accessToken, userID, name, description string, public bool) (*services.SpotifyPlaylist, error)
	AddTracksFn      func(ctx context.Context, accessToken, playlistID string, uris []string) error
}

func (m *MockCatalog) UserPlaylists(ctx context.Context, accessToken string) ([]services.SpotifySimplePlaylist, error) {
	if m.UserPlaylistsFn == nil {
		return nil, nil
	}
	return m.UserPlaylistsFn(ctx, accessToken)
}

func (m *MockCatalog) PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit int) ([]services.SpotifyPlaylistTrack, error) {
	if m.PlaylistTracksFn == nil {
		return nil, nil
	}
	return m.PlaylistTracksFn(ctx, accessToken, playlistID, limit)
}

func (m *MockCatalog) TrackFeatures(ctx context.Context, accessToken, trackID string) (*services.SpotifyAudioFeatures, error) {
	if m.TrackFeaturesFn == nil {
		return nil, nil
	}
	return m.TrackFeaturesFn(ctx, accessToken, trackID)
}

func (m *MockCatalog) CurrentUser(ctx context.Context, accessToken string) (*services.SpotifyUser, error) {
	if m.CurrentUserFn == nil {
		return nil, nil
	}
	return m.CurrentUserFn(ctx, accessToken)
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, accessToken, userID, name, description string, public bool) (*services.SpotifyPlaylist, error) {
	if m.CreatePlaylistFn == nil {
		return nil, nil
	}
	return m.CreatePlaylistFn(ctx, accessToken, userID, name, description, public)
}

func (m *MockCatalog) AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error {
	if m.AddTracksFn == nil {
		return nil
	}
	return m.AddTracksFn(ctx, accessToken, playlistID, uris)
}
