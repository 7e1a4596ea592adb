package queue

import "errors"

// MaxTrackDurationMs is the longest track the queue accepts (5 minutes).
const MaxTrackDurationMs = 300000

// Add-time policy errors.
var (
	// ErrExplicitTrack is returned when an explicit track is submitted.
	ErrExplicitTrack = errors.New("explicit tracks are not allowed")

	// ErrTrackTooLong is returned when a track exceeds MaxTrackDurationMs.
	ErrTrackTooLong = errors.New("tracks longer than 5 minutes are not allowed")
)

// Track holds the metadata for a Spotify track as returned by search.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	DurationMs  int      `json:"duration_ms"`
	URI         string   `json:"uri"`
	ExternalURL string   `json:"external_url,omitempty"`
	Explicit    bool     `json:"explicit"`
}

// Entry is a track plus the team that added it.
type Entry struct {
	Track
	TeamName string `json:"team_name"`
}

// ValidateTrack enforces the add-time content policy: no explicit tracks,
// nothing longer than 5 minutes. The search results are filtered the same
// way upstream, but both filters must hold independently since tracks can
// be submitted directly against the API.
func ValidateTrack(t Track) error {
	if t.Explicit {
		return ErrExplicitTrack
	}
	if t.DurationMs > MaxTrackDurationMs {
		return ErrTrackTooLong
	}
	return nil
}
