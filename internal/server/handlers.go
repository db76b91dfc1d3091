package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"moodmix/internal/models"
	"moodmix/internal/services"
	"moodmix/internal/shared"
	"moodmix/internal/tasks"
)

// API holds the dependencies for the relay's HTTP handlers.
type API struct {
	logger  *log.Logger
	auth    *services.Authenticator
	spotify *services.SpotifyService
	filter  *tasks.FilterEngine
	creator *tasks.CreateEngine
}

// NewAPI wires the handlers to the auth flow, the raw catalog service, and
// the task engines.
func NewAPI(logger *log.Logger, auth *services.Authenticator, spotify *services.SpotifyService) *API {
	return &API{
		logger:  logger,
		auth:    auth,
		spotify: spotify,
		filter:  tasks.NewFilterEngine(spotify),
		creator: tasks.NewCreateEngine(spotify),
	}
}

// Register mounts every relay endpoint on the router.
func (a *API) Register(router *BasicRouter) {
	router.Handle(http.MethodGet, "/", http.HandlerFunc(a.Index))
	router.Handle(http.MethodGet, "/login", http.HandlerFunc(a.Login))
	router.Handle(http.MethodPost, "/exchange-code", http.HandlerFunc(a.ExchangeCode))
	router.Handle(http.MethodGet, "/playlists", http.HandlerFunc(a.Playlists))
	router.Handle(http.MethodGet, "/playlisttracks", http.HandlerFunc(a.PlaylistTracks))
	router.Handle(http.MethodPost, "/create_playlist", http.HandlerFunc(a.CreatePlaylist))
	router.Handle(http.MethodGet, "/sayHello", http.HandlerFunc(a.SayHello))
}

// Index serves the login link. The ServeMux root pattern is a catch-all, so
// unknown paths get a JSON 404 here.
func (a *API) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "Spotify app <a href='/login'>Log in with Spotify</a>")
}

// Login redirects the browser to the Spotify authorization URL.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, a.auth.AuthURL(shared.GenerateID()), http.StatusFound)
}

// ExchangeCode trades the client-supplied authorization code for a token pair
// and relays the token payload back to the client.
func (a *API) ExchangeCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, shared.ErrInvalidInput.Error())
		return
	}

	_, payload, err := a.auth.Exchange(r.Context(), body.Code)
	if err != nil {
		a.logger.Error("token exchange failed", "error", err)

		if errors.Is(err, shared.ErrMissingCode) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var exchangeErr *services.ExchangeError
		if errors.As(err, &exchangeErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   shared.ErrTokenExchange.Error(),
				"details": exchangeErr.Details,
			})
			return
		}

		writeError(w, http.StatusBadRequest, shared.ErrTokenExchange.Error())
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// Playlists relays the caller's playlists as a raw upstream passthrough.
func (a *API) Playlists(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	resp, err := a.spotify.UserPlaylistsRaw(r.Context(), token)
	if err != nil {
		a.logger.Error("playlist fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch playlists")
		return
	}
	if resp.StatusCode != http.StatusOK {
		writeError(w, resp.StatusCode, "failed to fetch playlists")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(resp.Body)
}

// PlaylistTracks runs the valence filter across the caller's playlists.
//
// min_valence and max_valence default to 0 and 1; unparsable values fall back
// to the defaults rather than erroring.
func (a *API) PlaylistTracks(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	vr := models.ValenceRange{
		Min: queryFloat(r, "min_valence", 0),
		Max: queryFloat(r, "max_valence", 1),
	}

	candidates, err := a.filter.FilterTracks(r.Context(), token, vr)
	if err != nil {
		a.logger.Error("track filter failed", "error", err)
		a.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

// CreatePlaylist creates a playlist from the supplied track URIs and returns
// its public URL.
func (a *API) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req models.NewPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, shared.ErrInvalidInput.Error())
		return
	}

	// Input validation precedes the credential check, mirroring the contract
	// the web client relies on.
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := bearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	playlistURL, err := a.creator.Create(r.Context(), token, &req)
	if err != nil {
		a.logger.Error("playlist creation failed", "error", err)
		a.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"playlist_url": playlistURL})
}

// SayHello is the connectivity probe used by the web client.
func (a *API) SayHello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World from Moodmix server"})
}

// respondError maps engine errors onto the relay's error contract: upstream
// statuses propagate verbatim, validation errors map to 400, everything else
// is a generic 500.
func (a *API) respondError(w http.ResponseWriter, err error) {
	var statusErr *shared.StatusError

	switch {
	case errors.Is(err, shared.ErrEmptyTrackList), errors.Is(err, shared.ErrPlaylistCreate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &statusErr):
		writeError(w, statusErr.Status, statusErr.Err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// bearerToken extracts the access token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", shared.ErrMissingAuth
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", shared.ErrMissingAuth
	}

	return token, nil
}

// queryFloat parses a float query parameter, falling back to def when the
// parameter is absent or unparsable.
func queryFloat(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}

	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
