package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/hackfest/songqueue/internal/queue"
)

// searchLimit caps the number of candidates shown per query.
const searchLimit = 5

// SearchTracks runs a free-text track search and filters the results with
// the queue content policy. Search-side filtering is independent of the
// add-time check; both must hold.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]queue.Track, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", classifyError(err))
	}

	if result.Tracks == nil {
		return []queue.Track{}, nil
	}

	tracks := make([]queue.Track, 0, len(result.Tracks.Tracks))
	for _, ft := range result.Tracks.Tracks {
		tracks = append(tracks, convertTrack(ft))
	}
	return FilterPlayable(tracks), nil
}

// FilterPlayable drops tracks the queue would reject: explicit tracks and
// tracks longer than five minutes. Always returns a non-nil slice.
func FilterPlayable(tracks []queue.Track) []queue.Track {
	out := make([]queue.Track, 0, len(tracks))
	for _, t := range tracks {
		if queue.ValidateTrack(t) == nil {
			out = append(out, t)
		}
	}
	return out
}

// convertTrack converts a Spotify FullTrack into the local track type.
func convertTrack(ft spotify.FullTrack) queue.Track {
	artists := make([]string, len(ft.Artists))
	for i, a := range ft.Artists {
		artists[i] = a.Name
	}

	return queue.Track{
		ID:          ft.ID.String(),
		Name:        ft.Name,
		Artists:     artists,
		Album:       ft.Album.Name,
		DurationMs:  int(ft.Duration),
		URI:         string(ft.URI),
		ExternalURL: ft.ExternalURLs["spotify"],
		Explicit:    ft.Explicit,
	}
}
