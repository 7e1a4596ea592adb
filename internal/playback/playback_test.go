package playback

import (
	"context"
	"errors"
	"testing"

	"github.com/hackfest/songqueue/internal/identity"
	"github.com/hackfest/songqueue/internal/queue"
)

// fakePlayer records calls and returns scripted results.
type fakePlayer struct {
	devices    []Device
	devicesErr error
	playErr    error
	nextErr    error

	transferred []string
	played      []string
	skips       int
}

func (f *fakePlayer) Devices(context.Context) ([]Device, error) {
	return f.devices, f.devicesErr
}

func (f *fakePlayer) Transfer(_ context.Context, deviceID string) error {
	f.transferred = append(f.transferred, deviceID)
	return nil
}

func (f *fakePlayer) Play(_ context.Context, deviceID, uri string) error {
	if f.playErr != nil {
		return f.playErr
	}
	f.played = append(f.played, uri)
	return nil
}

func (f *fakePlayer) Next(_ context.Context, deviceID string) error {
	if f.nextErr != nil {
		return f.nextErr
	}
	f.skips++
	return nil
}

func activeDevice() []Device {
	return []Device{{ID: "dev-1", Name: "Living Room", Active: true}}
}

func entry(id, team string) queue.Entry {
	return queue.Entry{
		Track: queue.Track{
			ID:         id,
			Name:       "Track " + id,
			DurationMs: 180000,
			URI:        "spotify:track:" + id,
		},
		TeamName: team,
	}
}

func TestController_PlayNext(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	q.Append(entry("b", "Blue"))

	player := &fakePlayer{devices: activeDevice()}
	c := NewController(q)

	played, err := c.PlayNext(context.Background(), player, identity.Admin("dj"))
	if err != nil {
		t.Fatalf("PlayNext() error = %v", err)
	}

	if played.ID != "a" || played.TeamName != "Red" {
		t.Errorf("PlayNext() = %+v, want entry a (Red)", played)
	}

	if len(player.played) != 1 || player.played[0] != "spotify:track:a" {
		t.Errorf("player.played = %v, want [spotify:track:a]", player.played)
	}

	remaining := q.All()
	if len(remaining) != 1 || remaining[0].ID != "b" {
		t.Errorf("queue after PlayNext() = %v, want [b]", remaining)
	}

	np := q.NowPlaying()
	if np == nil || np.ID != "a" {
		t.Errorf("NowPlaying() = %v, want entry a", np)
	}
}

func TestController_PlayNext_NotAuthorized(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	player := &fakePlayer{devices: activeDevice()}
	c := NewController(q)

	tests := []struct {
		name  string
		actor identity.Identity
	}{
		{"team identity", identity.Team("Red")},
		{"zero identity", identity.Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.PlayNext(context.Background(), player, tt.actor)
			if !errors.Is(err, identity.ErrNotAuthorized) {
				t.Errorf("PlayNext() error = %v, want ErrNotAuthorized", err)
			}
			if q.Len() != 1 {
				t.Errorf("queue length = %d after unauthorized call, want 1", q.Len())
			}
		})
	}
}

func TestController_PlayNext_EmptyQueue(t *testing.T) {
	c := NewController(queue.NewStore())
	player := &fakePlayer{devices: activeDevice()}

	_, err := c.PlayNext(context.Background(), player, identity.Admin("dj"))
	if !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("PlayNext() error = %v, want ErrEmptyQueue", err)
	}
	if len(player.played) != 0 {
		t.Error("PlayNext() issued a play command on an empty queue")
	}
}

func TestController_PlayNext_NoDevice(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	player := &fakePlayer{} // no devices
	c := NewController(q)

	_, err := c.PlayNext(context.Background(), player, identity.Admin("dj"))
	if !errors.Is(err, ErrNoDeviceAvailable) {
		t.Errorf("PlayNext() error = %v, want ErrNoDeviceAvailable", err)
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d, want 1 (unchanged on failure)", q.Len())
	}
}

func TestController_PlayNext_TransfersToFirstInactiveDevice(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	player := &fakePlayer{devices: []Device{
		{ID: "dev-1", Name: "Laptop"},
		{ID: "dev-2", Name: "Phone"},
	}}
	c := NewController(q)

	if _, err := c.PlayNext(context.Background(), player, identity.Admin("dj")); err != nil {
		t.Fatalf("PlayNext() error = %v", err)
	}

	if len(player.transferred) != 1 || player.transferred[0] != "dev-1" {
		t.Errorf("player.transferred = %v, want [dev-1]", player.transferred)
	}
}

func TestController_PlayNext_PlayerFailureLeavesQueue(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	player := &fakePlayer{
		devices: activeDevice(),
		playErr: errors.New("player unavailable"),
	}
	c := NewController(q)

	_, err := c.PlayNext(context.Background(), player, identity.Admin("dj"))
	if err == nil {
		t.Fatal("PlayNext() error = nil, want player failure")
	}

	if q.Len() != 1 {
		t.Errorf("queue length = %d after failed play, want 1", q.Len())
	}
	if q.NowPlaying() != nil {
		t.Error("NowPlaying() set after failed play, want nil")
	}
}

func TestController_Skip(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	q.Append(entry("b", "Blue"))
	player := &fakePlayer{devices: activeDevice()}
	c := NewController(q)

	skipped, err := c.Skip(context.Background(), player, identity.Admin("dj"))
	if err != nil {
		t.Fatalf("Skip() error = %v", err)
	}

	if skipped.ID != "a" {
		t.Errorf("Skip() = %+v, want entry a", skipped)
	}
	if player.skips != 1 {
		t.Errorf("player.skips = %d, want 1", player.skips)
	}
	if remaining := q.All(); len(remaining) != 1 || remaining[0].ID != "b" {
		t.Errorf("queue after Skip() = %v, want [b]", remaining)
	}
}

func TestController_Skip_NotAuthorized(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	c := NewController(q)

	_, err := c.Skip(context.Background(), &fakePlayer{devices: activeDevice()}, identity.Team("Red"))
	if !errors.Is(err, identity.ErrNotAuthorized) {
		t.Errorf("Skip() error = %v, want ErrNotAuthorized", err)
	}
}

func TestController_Skip_FailureLeavesQueue(t *testing.T) {
	q := queue.NewStore()
	q.Append(entry("a", "Red"))
	player := &fakePlayer{
		devices: activeDevice(),
		nextErr: errors.New("player unavailable"),
	}
	c := NewController(q)

	if _, err := c.Skip(context.Background(), player, identity.Admin("dj")); err == nil {
		t.Fatal("Skip() error = nil, want player failure")
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d after failed skip, want 1", q.Len())
	}
}
