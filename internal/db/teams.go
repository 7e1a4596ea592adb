package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository handles team database operations.
type TeamRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new team.
func (r *TeamRepository) Create(ctx context.Context, team *Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	query := `
		INSERT INTO teams (id, name, code, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, team.ID, team.Name, team.Code).Scan(&team.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	return nil
}

// GetByCode retrieves a team by its login code.
func (r *TeamRepository) GetByCode(ctx context.Context, code string) (*Team, error) {
	query := `
		SELECT id, name, code, created_at
		FROM teams
		WHERE code = $1
	`
	var team Team
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&team.ID,
		&team.Name,
		&team.Code,
		&team.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}
	return &team, nil
}

// List returns all teams ordered by name.
func (r *TeamRepository) List(ctx context.Context) ([]Team, error) {
	query := `
		SELECT id, name, code, created_at
		FROM teams
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Code, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

// Delete removes a team by ID.
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
