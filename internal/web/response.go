package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hackfest/songqueue/internal/identity"
	"github.com/hackfest/songqueue/internal/playback"
	spotifyapi "github.com/hackfest/songqueue/internal/spotify"
)

// apiError is the machine-readable error body returned by every API handler.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]apiError{
		"error": {Code: code, Message: message},
	})
}

// writeDomainError maps the error taxonomy onto HTTP statuses and
// machine-readable codes at the request boundary.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCode):
		writeError(w, http.StatusUnauthorized, "invalid_code", "unknown team or admin code")
	case errors.Is(err, identity.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "not_authorized", "this action requires admin access")
	case errors.Is(err, playback.ErrEmptyQueue):
		writeError(w, http.StatusConflict, "empty_queue", "the queue is empty")
	case errors.Is(err, playback.ErrNoDeviceAvailable):
		writeError(w, http.StatusConflict, "no_device_available", "no Spotify device is available; open Spotify on a device first")
	case errors.Is(err, spotifyapi.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "token_expired", "Spotify access token expired; reconnect Spotify")
	case errors.Is(err, spotifyapi.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", "Spotify API request failed")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
