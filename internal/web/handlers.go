package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/hackfest/songqueue/internal/identity"
	"github.com/hackfest/songqueue/internal/playback"
	"github.com/hackfest/songqueue/internal/queue"
	spotifyapi "github.com/hackfest/songqueue/internal/spotify"
)

// Searcher runs a filtered track search on behalf of a logged-in browser.
type Searcher interface {
	SearchTracks(ctx context.Context, query string) ([]queue.Track, error)
}

// Handlers contains the HTTP handlers for the song queue application.
type Handlers struct {
	queue      *queue.Store
	controller *playback.Controller
	verifier   identity.Verifier
	sessions   *SessionStore
	auth       *spotifyauth.Authenticator
	templates  *Templates
	logger     *log.Logger

	// Factories build per-request Spotify clients from the submitted
	// access token. Swapped out in tests.
	newSearcher func(ctx context.Context, accessToken string) Searcher
	newPlayer   func(ctx context.Context, accessToken string) playback.Player
}

// NewHandlers creates a Handlers instance with real Spotify-backed factories.
func NewHandlers(
	q *queue.Store,
	verifier identity.Verifier,
	sessions *SessionStore,
	auth *spotifyauth.Authenticator,
	templates *Templates,
	logger *log.Logger,
) *Handlers {
	return &Handlers{
		queue:      q,
		controller: playback.NewController(q),
		verifier:   verifier,
		sessions:   sessions,
		auth:       auth,
		templates:  templates,
		logger:     logger,
		newSearcher: func(ctx context.Context, accessToken string) Searcher {
			return spotifyapi.NewFromToken(ctx, accessToken)
		},
		newPlayer: func(ctx context.Context, accessToken string) playback.Player {
			return spotifyapi.NewFromToken(ctx, accessToken)
		},
	}
}

// ============================================================================
// Pages
// ============================================================================

// Home renders the single-page queue UI (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	data := HomePageData{
		PageData: PageData{Title: "Song Queue"},
	}
	if session != nil {
		data.LoggedIn = true
		data.DisplayName = session.Identity.DisplayName()
		data.IsAdmin = session.Identity.IsAdmin()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		h.logger.Error("rendering home page", "err", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// ============================================================================
// Login
// ============================================================================

type loginRequest struct {
	Code string `json:"code"`
}

type sessionResponse struct {
	LoggedIn    bool   `json:"logged_in"`
	DisplayName string `json:"display_name,omitempty"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
}

// Login verifies a submitted team or admin code (POST /api/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "a code is required")
		return
	}

	id, err := h.verifier.Verify(r.Context(), req.Code)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidCode) {
			h.logger.Error("verifying code", "err", err)
		}
		writeDomainError(w, err)
		return
	}

	session := h.sessions.Create(id)
	h.sessions.SetCookie(w, session)
	h.logger.Info("login", "name", id.DisplayName(), "admin", id.IsAdmin())

	writeJSON(w, http.StatusOK, sessionResponse{
		LoggedIn:    true,
		DisplayName: id.DisplayName(),
		IsAdmin:     id.IsAdmin(),
	})
}

// Logout clears the session (POST /api/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(session.ID)
	}
	h.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, sessionResponse{})
}

// CurrentSession reports the caller's login state (GET /api/session),
// letting the UI restore itself after a page reload.
func (h *Handlers) CurrentSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		writeJSON(w, http.StatusOK, sessionResponse{})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		LoggedIn:    true,
		DisplayName: session.Identity.DisplayName(),
		IsAdmin:     session.Identity.IsAdmin(),
	})
}

// requireCapability resolves the request's session and checks a capability
// at a single policy boundary. Writes the error response on failure.
func (h *Handlers) requireCapability(w http.ResponseWriter, r *http.Request, c identity.Capability) (identity.Identity, bool) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		writeError(w, http.StatusUnauthorized, "not_logged_in", "log in with your team code first")
		return identity.Identity{}, false
	}
	if err := identity.Require(session.Identity, c); err != nil {
		writeDomainError(w, err)
		return identity.Identity{}, false
	}
	return session.Identity, true
}

// ============================================================================
// Spotify OAuth
// ============================================================================

const oauthStateCookie = "oauth_state"

// AuthURL returns the Spotify authorization URL (GET /api/auth).
func (h *Handlers) AuthURL(w http.ResponseWriter, r *http.Request) {
	state, err := generateOAuthState()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to generate state")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})

	writeJSON(w, http.StatusOK, map[string]string{"url": h.auth.AuthURL(state)})
}

// Callback exchanges the authorization code for an access token
// (GET /api/callback) and redirects to the UI with the token in a query
// parameter, where the browser picks it up and strips it from the URL.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil {
		http.Redirect(w, r, "/?error=missing_state", http.StatusTemporaryRedirect)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Redirect(w, r, "/?error=state_mismatch", http.StatusTemporaryRedirect)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.logger.Warn("spotify auth denied", "err", errMsg)
		http.Redirect(w, r, "/?error=auth_denied", http.StatusTemporaryRedirect)
		return
	}

	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		h.logger.Error("exchanging authorization code", "err", err)
		http.Redirect(w, r, "/?error=token_exchange_failed", http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, "/?access_token="+url.QueryEscape(token.AccessToken), http.StatusTemporaryRedirect)
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ============================================================================
// Search
// ============================================================================

type searchResponse struct {
	Tracks searchItems `json:"tracks"`
}

type searchItems struct {
	Items []queue.Track `json:"items"`
}

// Search proxies a track search to Spotify (GET /api/search?q&access_token),
// filtered to tracks the queue would accept.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	accessToken := r.URL.Query().Get("access_token")
	if query == "" || accessToken == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "q and access_token are required")
		return
	}

	searcher := h.newSearcher(r.Context(), accessToken)
	tracks, err := searcher.SearchTracks(r.Context(), query)
	if err != nil {
		h.logger.Error("searching tracks", "query", query, "err", err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Tracks: searchItems{Items: tracks}})
}

// ============================================================================
// Queue
// ============================================================================

type queueResponse struct {
	Queue      []queue.Entry `json:"queue"`
	NowPlaying *queue.Entry  `json:"now_playing,omitempty"`
}

type addTrackRequest struct {
	Track *queue.Track `json:"track"`
}

type replaceQueueRequest struct {
	Queue *[]queue.Entry `json:"queue"`
}

// GetQueue returns the current queue state (GET /api/queue).
func (h *Handlers) GetQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, queueResponse{
		Queue:      h.queue.All(),
		NowPlaying: h.queue.NowPlaying(),
	})
}

// AddTrack validates and appends a track (POST /api/queue). The submitting
// team's name is stamped onto the entry here, never taken from the client.
func (h *Handlers) AddTrack(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCapability(w, r, identity.CapAddTrack)
	if !ok {
		return
	}

	var req addTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Track == nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "a track is required")
		return
	}

	if err := queue.ValidateTrack(*req.Track); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "track_rejected", err.Error())
		return
	}

	entry := queue.Entry{Track: *req.Track, TeamName: actor.DisplayName()}
	state := h.queue.Append(entry)
	h.logger.Info("track added", "track", entry.Name, "team", entry.TeamName, "queue_len", len(state))

	writeJSON(w, http.StatusOK, queueResponse{Queue: state, NowPlaying: h.queue.NowPlaying()})
}

// ReplaceQueue overwrites the whole queue (PUT /api/queue, admin only).
func (h *Handlers) ReplaceQueue(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireCapability(w, r, identity.CapRemoveTrack|identity.CapClearQueue); !ok {
		return
	}

	var req replaceQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Queue == nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "a queue array is required")
		return
	}

	state := h.queue.Replace(*req.Queue)
	writeJSON(w, http.StatusOK, queueResponse{Queue: state, NowPlaying: h.queue.NowPlaying()})
}

// ClearQueue wipes the queue (DELETE /api/queue, admin only).
func (h *Handlers) ClearQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireCapability(w, r, identity.CapClearQueue)
	if !ok {
		return
	}

	state := h.queue.Clear()
	h.logger.Info("queue cleared", "by", actor.DisplayName())
	writeJSON(w, http.StatusOK, queueResponse{Queue: state, NowPlaying: h.queue.NowPlaying()})
}

// RemoveTrack removes the first entry with the given track ID
// (DELETE /api/queue/{id}, admin only). A miss returns the unchanged queue.
func (h *Handlers) RemoveTrack(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireCapability(w, r, identity.CapRemoveTrack); !ok {
		return
	}

	id := chi.URLParam(r, "id")
	state := h.queue.RemoveByID(id)
	writeJSON(w, http.StatusOK, queueResponse{Queue: state, NowPlaying: h.queue.NowPlaying()})
}

// ============================================================================
// Playback
// ============================================================================

type playbackRequest struct {
	AccessToken string `json:"access_token"`
}

type playbackResponse struct {
	Played queue.Entry   `json:"played"`
	Queue  []queue.Entry `json:"queue"`
}

// PlayNext plays the head of the queue (POST /api/playback/play, admin only).
func (h *Handlers) PlayNext(w http.ResponseWriter, r *http.Request) {
	h.playbackCommand(w, r, h.controller.PlayNext)
}

// Skip skips the current track (POST /api/playback/skip, admin only).
func (h *Handlers) Skip(w http.ResponseWriter, r *http.Request) {
	h.playbackCommand(w, r, h.controller.Skip)
}

func (h *Handlers) playbackCommand(
	w http.ResponseWriter,
	r *http.Request,
	command func(context.Context, playback.Player, identity.Identity) (queue.Entry, error),
) {
	actor, ok := h.requireCapability(w, r, identity.CapControlPlayback)
	if !ok {
		return
	}

	var req playbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "an access_token is required")
		return
	}

	player := h.newPlayer(r.Context(), req.AccessToken)
	entry, err := command(r.Context(), player, actor)
	if err != nil {
		h.logger.Warn("playback command failed", "by", actor.DisplayName(), "err", err)
		writeDomainError(w, err)
		return
	}

	h.logger.Info("playback advanced", "track", entry.Name, "team", entry.TeamName, "by", actor.DisplayName())
	writeJSON(w, http.StatusOK, playbackResponse{Played: entry, Queue: h.queue.All()})
}
