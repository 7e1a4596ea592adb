// Package spotify adapts the Spotify Web API for search and Connect playback.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Sentinel errors.
var (
	// ErrUpstreamUnavailable is returned when the Spotify API responds
	// with a non-2xx status other than an auth failure.
	ErrUpstreamUnavailable = errors.New("spotify API unavailable")

	// ErrTokenExpired is returned when the access token is rejected.
	// Detected from the structured HTTP status, not the error message.
	ErrTokenExpired = errors.New("spotify access token expired or invalid")
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a client wrapper over an already-authenticated API client.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewFromToken creates a client from a bare access token, as submitted by
// the browser after the OAuth redirect. The token is used as-is; there is
// no refresh, expiry requires a full re-login.
func NewFromToken(ctx context.Context, accessToken string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return New(spotify.New(oauth2.NewClient(ctx, src)))
}

// classifyError maps a Spotify API error onto the local error taxonomy
// using the status code it carries.
func classifyError(err error) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrTokenExpired, apiErr.Message)
		default:
			return fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, apiErr.Status, apiErr.Message)
		}
	}
	return err
}
