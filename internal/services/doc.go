// Package services implements the upstream surface of the relay: a raw
// passthrough HTTP client for the Spotify Web API, typed operations on top of
// it, and the OAuth2 authorization-code flow.
//
// # Raw Client
//
// [Client] issues authenticated GET/POST calls against the API base URL and
// returns the upstream status code and parsed JSON verbatim in a [Response].
// It never retries and never interprets any status code (429 included); a
// non-2xx response is surfaced as-is to the caller.
//
// Every call runs under a bounded timeout. A timed-out call returns an error,
// which callers treat exactly like a failed call for that call's scope: skip
// the playlist, exclude the track, or fail the outer operation.
//
// A client-side [rate.Limiter] paces outgoing calls so the per-track
// audio-feature fan-out cannot trip upstream rate limiting.
//
// # Typed Operations
//
// [SpotifyService] maps the endpoints the relay consumes (playlists, playlist
// tracks, audio features, user profile, playlist creation, track attachment)
// to typed response structs. Operations take the caller's bearer token on
// every call; the service holds no credential state.
//
// # OAuth
//
// [Authenticator] builds the authorization redirect URL and exchanges
// authorization codes for token pairs via [oauth2.Config]. The exchanged
// credential is handed back to the web client; nothing is persisted
// server-side.
//
// # Error Handling
//
// Operations use sentinels from the shared package. Non-200 upstream statuses
// are wrapped in [shared.StatusError] so handlers can propagate the status
// verbatim; a failed token exchange yields an [ExchangeError] carrying the
// upstream error payload.
package services
