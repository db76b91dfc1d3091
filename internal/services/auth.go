// OAuth2 authorization-code flow against the Spotify accounts service
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"moodmix/internal/models"
	"moodmix/internal/shared"
)

// scopes requested on login. Read scopes cover playlist/track retrieval,
// modify scopes cover filtered-playlist creation.
var scopes = []string{
	"user-read-private",
	"user-read-email",
	"playlist-modify-private",
	"playlist-modify-public",
}

// defaultExpiry applies when the token endpoint omits expires_in.
const defaultExpiry = 3600 * time.Second

// ExchangeError carries the upstream error payload of a failed token exchange
// so handlers can return it to the client as details.
type ExchangeError struct {
	Details any
}

func (e *ExchangeError) Error() string {
	return shared.ErrTokenExchange.Error()
}

func (e *ExchangeError) Unwrap() error {
	return shared.ErrTokenExchange
}

// Authenticator builds authorization URLs and exchanges authorization codes
// for token pairs. It wraps [oauth2.Config]; the exchanged credential is
// returned to the caller and never stored server-side.
type Authenticator struct {
	config *oauth2.Config
}

// NewAuthenticator creates an Authenticator from Spotify credentials.
//
// Empty authURL/tokenURL select the production Spotify accounts endpoints.
func NewAuthenticator(creds shared.SpotifyConfig, authURL, tokenURL string) *Authenticator {
	if authURL == "" {
		authURL = spotifyAuthURL
	}
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthURL returns the authorization URL for user login.
//
// show_dialog forces the Spotify consent screen even for returning users,
// matching the behavior the web client expects.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades an authorization code for an access/refresh token pair.
//
// Returns the credential plus the token payload to relay back to the client.
// A missing code fails with [shared.ErrMissingCode] before any network call;
// an upstream rejection fails with an [ExchangeError] carrying the upstream
// payload.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*models.AccessCredential, map[string]any, error) {
	if code == "" {
		return nil, nil, shared.ErrMissingCode
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			var details any
			if jsonErr := json.Unmarshal(retrieveErr.Body, &details); jsonErr != nil {
				details = string(retrieveErr.Body)
			}
			return nil, nil, &ExchangeError{Details: details}
		}
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrTokenExchange, err)
	}

	if token.AccessToken == "" {
		return nil, nil, &ExchangeError{Details: "token response missing access_token"}
	}

	expiresIn := int(defaultExpiry / time.Second)
	expiresAt := token.Expiry
	if v, ok := token.Extra("expires_in").(float64); ok && v > 0 {
		expiresIn = int(v)
	} else if expiresAt.IsZero() {
		expiresAt = time.Now().Add(defaultExpiry)
	}
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}

	cred := &models.AccessCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiresAt,
	}

	payload := map[string]any{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"expires_in":   expiresIn,
	}
	if token.RefreshToken != "" {
		payload["refresh_token"] = token.RefreshToken
	}
	if scope, ok := token.Extra("scope").(string); ok && scope != "" {
		payload["scope"] = scope
	}

	return cred, payload, nil
}
