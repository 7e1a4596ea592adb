// Package identity maps submitted team and admin codes to capability sets
// and enforces them at a single policy boundary.
package identity

import "errors"

// Sentinel errors.
var (
	// ErrInvalidCode is returned when a submitted code matches no team or admin.
	ErrInvalidCode = errors.New("invalid code")

	// ErrNotAuthorized is returned when an identity lacks a required capability.
	ErrNotAuthorized = errors.New("not authorized")
)

// Capability is a single permitted action.
type Capability uint8

const (
	// CapAddTrack allows appending tracks to the queue.
	CapAddTrack Capability = 1 << iota

	// CapRemoveTrack allows removing arbitrary queue entries.
	CapRemoveTrack

	// CapClearQueue allows wiping the queue.
	CapClearQueue

	// CapControlPlayback allows play/skip commands against the player.
	CapControlPlayback
)

// adminCaps is the full capability set. Admin is a strict superset of a team.
const adminCaps = CapAddTrack | CapRemoveTrack | CapClearQueue | CapControlPlayback

// Identity is a verified team or admin with its capability set.
// The zero value carries no capabilities.
type Identity struct {
	TeamName  string
	AdminName string
	caps      Capability
}

// Team returns an identity for a team that may add tracks.
func Team(name string) Identity {
	return Identity{TeamName: name, caps: CapAddTrack}
}

// Admin returns an identity with the full capability set.
func Admin(name string) Identity {
	return Identity{AdminName: name, caps: adminCaps}
}

// Can reports whether the identity holds every capability in c.
func (id Identity) Can(c Capability) bool {
	return id.caps&c == c
}

// IsAdmin reports whether the identity holds the full admin capability set.
func (id Identity) IsAdmin() bool {
	return id.Can(adminCaps)
}

// DisplayName returns the label stamped onto queue entries: the team name,
// or the admin's name when an admin adds a track directly.
func (id Identity) DisplayName() string {
	if id.TeamName != "" {
		return id.TeamName
	}
	return id.AdminName
}

// Require is the policy-enforcement boundary: every mutating operation
// threads its acting identity through here before touching shared state.
// Returns ErrNotAuthorized if any capability in c is missing.
func Require(id Identity, c Capability) error {
	if !id.Can(c) {
		return ErrNotAuthorized
	}
	return nil
}
