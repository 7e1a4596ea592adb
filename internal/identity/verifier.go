package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackfest/songqueue/internal/db"
)

// Verifier maps a submitted code to a verified identity.
// Returns ErrInvalidCode when the code matches nothing; no partial
// capability set is ever granted.
type Verifier interface {
	Verify(ctx context.Context, code string) (Identity, error)
}

// DBVerifier looks codes up in the PostgreSQL credential store.
// Team codes are checked before admin codes.
type DBVerifier struct {
	database *db.DB
}

// NewDBVerifier creates a verifier backed by the given database.
func NewDBVerifier(database *db.DB) *DBVerifier {
	return &DBVerifier{database: database}
}

// Verify looks up the code in the teams table, then the admins table.
func (v *DBVerifier) Verify(ctx context.Context, code string) (Identity, error) {
	if code == "" {
		return Identity{}, ErrInvalidCode
	}

	team, err := v.database.Teams().GetByCode(ctx, code)
	if err == nil {
		return Team(team.Name), nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return Identity{}, fmt.Errorf("verifying team code: %w", err)
	}

	admin, err := v.database.Admins().GetByCode(ctx, code)
	if err == nil {
		return Admin(admin.Name), nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return Identity{}, fmt.Errorf("verifying admin code: %w", err)
	}

	return Identity{}, ErrInvalidCode
}

// StaticVerifier verifies codes against fixed in-memory tables. It backs
// the config-file credential mode and tests, where no database is wired.
type StaticVerifier struct {
	teams  map[string]string // code -> team name
	admins map[string]string // code -> admin name
}

// NewStaticVerifier creates an empty static verifier.
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{
		teams:  make(map[string]string),
		admins: make(map[string]string),
	}
}

// AddTeam registers a team code.
func (v *StaticVerifier) AddTeam(code, name string) {
	v.teams[code] = name
}

// AddAdmin registers an admin code.
func (v *StaticVerifier) AddAdmin(code, name string) {
	v.admins[code] = name
}

// Verify checks the fixed tables, teams first.
func (v *StaticVerifier) Verify(_ context.Context, code string) (Identity, error) {
	if name, ok := v.teams[code]; ok && code != "" {
		return Team(name), nil
	}
	if name, ok := v.admins[code]; ok && code != "" {
		return Admin(name), nil
	}
	return Identity{}, ErrInvalidCode
}

// Ensure both verifiers implement Verifier.
var (
	_ Verifier = (*DBVerifier)(nil)
	_ Verifier = (*StaticVerifier)(nil)
)
