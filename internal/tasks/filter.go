// package tasks implements the aggregation pipelines behind the relay's endpoints.
//
// The core abstractions are FilterEngine, which fans out over playlists and tracks to
// join audio features with track metadata, and CreateEngine, which turns a filtered
// track set into a new playlist on the caller's account.
package tasks

import (
	"context"

	"golang.org/x/sync/errgroup"

	"moodmix/internal/models"
	"moodmix/internal/services"
)

const (
	// trackPageLimit caps the tracks fetched per playlist. Fixed page size,
	// not configurable.
	trackPageLimit = 5

	// fanOutWorkers bounds concurrent upstream calls at each fan-out level.
	fanOutWorkers = 4
)

// unknownArtist is reported when a track carries no artist records.
const unknownArtist = "Unknown artist"

// Catalog defines the upstream operations the task engines consume.
// [services.SpotifyService] is the production implementation.
type Catalog interface {
	// UserPlaylists retrieves the caller's playlists.
	UserPlaylists(ctx context.Context, accessToken string) ([]services.SpotifySimplePlaylist, error)

	// PlaylistTracks retrieves up to limit tracks of a playlist.
	PlaylistTracks(ctx context.Context, accessToken, playlistID string, limit int) ([]services.SpotifyPlaylistTrack, error)

	// TrackFeatures retrieves the audio-feature record for a track.
	TrackFeatures(ctx context.Context, accessToken, trackID string) (*services.SpotifyAudioFeatures, error)

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context, accessToken string) (*services.SpotifyUser, error)

	// CreatePlaylist creates a playlist on the given user's account.
	CreatePlaylist(ctx context.Context, accessToken, userID, name, description string, public bool) (*services.SpotifyPlaylist, error)

	// AddTracks attaches track URIs to a playlist in one batch call.
	AddTracks(ctx context.Context, accessToken, playlistID string, uris []string) error
}

// FilterEngine joins the caller's playlist tracks with their audio features
// and filters them by valence range.
type FilterEngine struct {
	catalog Catalog
}

// NewFilterEngine creates a FilterEngine over the given catalog.
func NewFilterEngine(catalog Catalog) *FilterEngine {
	return &FilterEngine{catalog: catalog}
}

// FilterTracks returns every track across the caller's playlists whose
// valence falls within vr, both bounds inclusive.
//
// The playlist fetch is fatal; everything below it degrades: a playlist whose
// track page cannot be fetched contributes zero candidates, and a track whose
// feature lookup fails is excluded from the range test. Fan-out at both
// levels runs on bounded worker pools, with results written into
// index-addressed slices so output ordering matches the sequential walk:
// playlist by playlist, track by track within a playlist.
func (e *FilterEngine) FilterTracks(ctx context.Context, accessToken string, vr models.ValenceRange) ([]models.TrackCandidate, error) {
	playlists, err := e.catalog.UserPlaylists(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	perPlaylist := make([][]models.TrackCandidate, len(playlists))

	g := new(errgroup.Group)
	g.SetLimit(fanOutWorkers)

	for i, playlist := range playlists {
		g.Go(func() error {
			candidates, err := e.playlistCandidates(ctx, accessToken, playlist.ID, vr)
			if err != nil {
				// Skipped: this playlist contributes nothing.
				return nil
			}
			perPlaylist[i] = candidates
			return nil
		})
	}

	// Workers never return an error; failures degrade the result set instead.
	_ = g.Wait()

	var all []models.TrackCandidate
	for _, candidates := range perPlaylist {
		all = append(all, candidates...)
	}
	if all == nil {
		all = []models.TrackCandidate{}
	}

	return all, nil
}

// playlistCandidates fetches one bounded page of tracks, joins each with its
// audio features, and keeps those inside the range.
func (e *FilterEngine) playlistCandidates(ctx context.Context, accessToken, playlistID string, vr models.ValenceRange) ([]models.TrackCandidate, error) {
	items, err := e.catalog.PlaylistTracks(ctx, accessToken, playlistID, trackPageLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.TrackCandidate, len(items))

	g := new(errgroup.Group)
	g.SetLimit(fanOutWorkers)

	for i, item := range items {
		candidates[i] = newCandidate(item.Track)

		g.Go(func() error {
			features, err := e.catalog.TrackFeatures(ctx, accessToken, item.Track.ID)
			if err != nil {
				// Valence stays unavailable; the track cannot pass the range test.
				return nil
			}
			valence := features.Valence
			candidates[i].Valence = &valence
			return nil
		})
	}

	_ = g.Wait()

	kept := make([]models.TrackCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if vr.Contains(&candidate) {
			kept = append(kept, candidate)
		}
	}

	return kept, nil
}

// newCandidate maps an upstream track record onto a candidate without a valence.
func newCandidate(track services.SpotifyTrack) models.TrackCandidate {
	artist := unknownArtist
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	return models.TrackCandidate{
		ID:     track.ID,
		Name:   track.Name,
		Artist: artist,
		URI:    track.URI,
		URL:    track.ExternalURLs.Spotify,
	}
}
