package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"moviemagic/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateUsername(ctx context.Context, id string, username string) (*models.Profile, error)
}

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = "id, username, avatar_url, created_at, updated_at"

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = $1", id).
		Scan(&p.ID, &p.Username, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &p, nil
}

// UpdateUsername writes through to the caller's own row; the row is created
// on first write so a fresh principal has a profile after its first PUT.
func (r *profileRepository) UpdateUsername(ctx context.Context, id string, username string) (*models.Profile, error) {
	query := `
	INSERT INTO profiles (id, username, created_at, updated_at)
	VALUES ($1, $2, NOW(), NOW())
	ON CONFLICT (id) DO UPDATE
	SET username = EXCLUDED.username, updated_at = NOW()
	RETURNING ` + profileColumns

	var p models.Profile
	err := r.db.QueryRow(ctx, query, id, username).
		Scan(&p.ID, &p.Username, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &p, nil
}
