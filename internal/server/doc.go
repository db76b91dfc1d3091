// Package server exposes the relay's six endpoints plus the connectivity
// probe, and the routing/middleware infrastructure under them.
//
// # Routes
//
//	GET  /                → HTML login link
//	GET  /login           → 302 redirect to the Spotify authorization URL
//	POST /exchange-code   → authorization-code exchange, relays the token payload
//	GET  /playlists       → raw passthrough of the caller's playlists
//	GET  /playlisttracks  → valence-filtered track candidates
//	POST /create_playlist → creates a playlist from track URIs
//	GET  /sayHello        → connectivity probe
//
// # Request Credentials
//
// There is no server-side session. The three protected routes read the
// caller's bearer token from the Authorization header on every request and
// fail with a JSON 401 before any upstream call when it is missing or
// malformed.
//
// # Middleware
//
// [BasicRouter] wraps [http.ServeMux] with method filtering and a middleware
// stack applied in reverse registration order. The stack is panic recovery
// (JSON 500, detail logged only), request logging with generated request IDs,
// and single-origin CORS with preflight handling.
//
// # Error Contract
//
// Every error response is JSON {"error": string}, optionally with a
// "details" field on a failed token exchange. Upstream statuses propagate
// verbatim where meaningful; unexpected failures map to a generic 500.
package server
