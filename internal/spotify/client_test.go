package spotify

import (
	"errors"
	"net/http"
	"testing"

	"github.com/zmb3/spotify/v2"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		wantNil bool
	}{
		{
			name: "401 maps to token expired",
			err:  spotify.Error{Status: http.StatusUnauthorized, Message: "The access token expired"},
			want: ErrTokenExpired,
		},
		{
			name: "404 maps to upstream unavailable",
			err:  spotify.Error{Status: http.StatusNotFound, Message: "Device not found"},
			want: ErrUpstreamUnavailable,
		},
		{
			name: "503 maps to upstream unavailable",
			err:  spotify.Error{Status: http.StatusServiceUnavailable, Message: "Service unavailable"},
			want: ErrUpstreamUnavailable,
		},
		{
			name: "non-API errors pass through",
			err:  errors.New("connection refused"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if tt.want == nil {
				if got != tt.err {
					t.Errorf("classifyError() = %v, want original error", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyError() = %v, want wrapped %v", got, tt.want)
			}
		})
	}
}

// The mapping must key off the structured status code; a misleading message
// body must not change the classification.
func TestClassifyError_IgnoresMessageText(t *testing.T) {
	err := spotify.Error{Status: http.StatusBadGateway, Message: "token expired"}
	got := classifyError(err)

	if errors.Is(got, ErrTokenExpired) {
		t.Error("classifyError() matched on message text, want status-based mapping")
	}
	if !errors.Is(got, ErrUpstreamUnavailable) {
		t.Errorf("classifyError() = %v, want ErrUpstreamUnavailable", got)
	}
}
