package tasks

import (
	"context"

	"moodmix/internal/models"
)

// playlistDescription is attached to every playlist the relay creates.
const playlistDescription = "Created via Moodmix"

// CreateEngine creates a playlist on the caller's account from a filtered
// track set.
type CreateEngine struct {
	catalog Catalog
}

// NewCreateEngine creates a CreateEngine over the given catalog.
func NewCreateEngine(catalog Catalog) *CreateEngine {
	return &CreateEngine{catalog: catalog}
}

// Create resolves the caller's user id, creates a private playlist, and
// attaches the requested track URIs in one batch call. Returns the new
// playlist's public URL.
//
// Input validation runs before any network call. If track attachment fails
// after creation, the empty playlist is left on the account; there is no
// compensation step.
func (e *CreateEngine) Create(ctx context.Context, accessToken string, req *models.NewPlaylistRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	user, err := e.catalog.CurrentUser(ctx, accessToken)
	if err != nil {
		return "", err
	}

	playlist, err := e.catalog.CreatePlaylist(ctx, accessToken, user.ID, req.Name, playlistDescription, false)
	if err != nil {
		return "", err
	}

	if err := e.catalog.AddTracks(ctx, accessToken, playlist.ID, req.TrackURIs); err != nil {
		return "", err
	}

	return playlist.ExternalURLs.Spotify, nil
}
