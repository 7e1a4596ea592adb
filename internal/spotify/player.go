package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/hackfest/songqueue/internal/playback"
)

// Devices lists the user's connected Spotify Connect devices.
func (c *Client) Devices(ctx context.Context) ([]playback.Device, error) {
	devices, err := c.api.PlayerDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing player devices: %w", classifyError(err))
	}

	out := make([]playback.Device, 0, len(devices))
	for _, d := range devices {
		if d.Restricted {
			continue
		}
		out = append(out, playback.Device{
			ID:     d.ID.String(),
			Name:   d.Name,
			Active: d.Active,
		})
	}
	return out, nil
}

// Transfer moves playback to the given device without starting it.
func (c *Client) Transfer(ctx context.Context, deviceID string) error {
	if err := c.api.TransferPlayback(ctx, spotify.ID(deviceID), false); err != nil {
		return fmt.Errorf("transferring playback: %w", classifyError(err))
	}
	return nil
}

// Play starts the given track URI on the given device.
func (c *Client) Play(ctx context.Context, deviceID, uri string) error {
	id := spotify.ID(deviceID)
	opts := &spotify.PlayOptions{
		DeviceID: &id,
		URIs:     []spotify.URI{spotify.URI(uri)},
	}
	if err := c.api.PlayOpt(ctx, opts); err != nil {
		return fmt.Errorf("starting playback: %w", classifyError(err))
	}
	return nil
}

// Next skips to the next track on the given device.
func (c *Client) Next(ctx context.Context, deviceID string) error {
	id := spotify.ID(deviceID)
	if err := c.api.NextOpt(ctx, &spotify.PlayOptions{DeviceID: &id}); err != nil {
		return fmt.Errorf("skipping playback: %w", classifyError(err))
	}
	return nil
}

// Ensure Client satisfies the playback controller's player contract.
var _ playback.Player = (*Client)(nil)
