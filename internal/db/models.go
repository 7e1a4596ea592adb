package db

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a participating team and its login code.
type Team struct {
	ID        uuid.UUID
	Name      string
	Code      string
	CreatedAt time.Time
}

// Admin represents an event organizer allowed to drive playback.
type Admin struct {
	ID        uuid.UUID
	Name      string
	Code      string
	CreatedAt time.Time
}
