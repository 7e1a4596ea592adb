// Package playback orchestrates play/skip commands against an external
// player and advances the shared queue only after the player call succeeds.
package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackfest/songqueue/internal/identity"
	"github.com/hackfest/songqueue/internal/queue"
)

// Sentinel errors.
var (
	// ErrEmptyQueue is returned when there is nothing to play or skip.
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrNoDeviceAvailable is returned when no playback device is connected.
	ErrNoDeviceAvailable = errors.New("no playback device available")
)

// Device is a connected playback device.
type Device struct {
	ID     string
	Name   string
	Active bool
}

// Player issues commands to the external playback API. Implementations are
// built per request from the acting admin's access token.
type Player interface {
	// Devices lists the available playback devices.
	Devices(ctx context.Context) ([]Device, error)

	// Transfer moves playback to the given device without starting it.
	Transfer(ctx context.Context, deviceID string) error

	// Play starts playing the track URI on the given device.
	Play(ctx context.Context, deviceID, uri string) error

	// Next skips to the next track on the given device.
	Next(ctx context.Context, deviceID string) error
}

// Controller advances the queue in lockstep with the external player.
// The player remains the source of truth for what is actually audible;
// the queue is a local prediction and can drift if playback is driven
// out of band.
type Controller struct {
	queue *queue.Store
}

// NewController creates a controller over the shared queue store.
func NewController(q *queue.Store) *Controller {
	return &Controller{queue: q}
}

// PlayNext plays the head of the queue on an available device. Only on
// success is the head removed and recorded as now playing; a failed player
// call leaves the queue untouched and is not retried.
func (c *Controller) PlayNext(ctx context.Context, player Player, actor identity.Identity) (queue.Entry, error) {
	if err := identity.Require(actor, identity.CapControlPlayback); err != nil {
		return queue.Entry{}, err
	}

	head, ok := c.queue.Head()
	if !ok {
		return queue.Entry{}, ErrEmptyQueue
	}

	device, err := c.resolveDevice(ctx, player)
	if err != nil {
		return queue.Entry{}, err
	}

	if err := player.Play(ctx, device.ID, head.URI); err != nil {
		return queue.Entry{}, fmt.Errorf("playing %q: %w", head.Name, err)
	}

	played, ok := c.queue.Advance()
	if !ok {
		// The queue was cleared between the player call and the advance.
		return head, nil
	}
	return played, nil
}

// Skip tells the player to move on and, on success, drops the head entry.
// It does not verify that the skip corresponded to the removed entry.
func (c *Controller) Skip(ctx context.Context, player Player, actor identity.Identity) (queue.Entry, error) {
	if err := identity.Require(actor, identity.CapControlPlayback); err != nil {
		return queue.Entry{}, err
	}

	if c.queue.Len() == 0 {
		return queue.Entry{}, ErrEmptyQueue
	}

	device, err := c.resolveDevice(ctx, player)
	if err != nil {
		return queue.Entry{}, err
	}

	if err := player.Next(ctx, device.ID); err != nil {
		return queue.Entry{}, fmt.Errorf("skipping track: %w", err)
	}

	skipped, ok := c.queue.Advance()
	if !ok {
		return queue.Entry{}, ErrEmptyQueue
	}
	return skipped, nil
}

// resolveDevice picks the active device, or transfers playback to the first
// available one when nothing is marked active.
func (c *Controller) resolveDevice(ctx context.Context, player Player) (Device, error) {
	devices, err := player.Devices(ctx)
	if err != nil {
		return Device{}, fmt.Errorf("listing devices: %w", err)
	}
	if len(devices) == 0 {
		return Device{}, ErrNoDeviceAvailable
	}

	for _, d := range devices {
		if d.Active {
			return d, nil
		}
	}

	target := devices[0]
	if err := player.Transfer(ctx, target.ID); err != nil {
		return Device{}, fmt.Errorf("transferring playback to %q: %w", target.Name, err)
	}
	return target, nil
}
