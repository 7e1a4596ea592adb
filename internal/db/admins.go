package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminRepository handles admin database operations.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, admin *Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	query := `
		INSERT INTO admins (id, name, code, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, admin.ID, admin.Name, admin.Code).Scan(&admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting admin: %w", err)
	}
	return nil
}

// GetByCode retrieves an admin by its login code.
func (r *AdminRepository) GetByCode(ctx context.Context, code string) (*Admin, error) {
	query := `
		SELECT id, name, code, created_at
		FROM admins
		WHERE code = $1
	`
	var admin Admin
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Code,
		&admin.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin: %w", err)
	}
	return &admin, nil
}
