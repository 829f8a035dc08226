package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"moviemagic/internal/models"
)

type FavoriteRepository interface {
	// Add is an idempotent upsert: favoriting the same media twice returns
	// the existing row, never a second one.
	Add(ctx context.Context, userID string, mediaID int64) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]models.FavoriteWithMedia, error)
	// Remove reports the number of rows deleted; removing a favorite the
	// user never had is zero rows, not an error.
	Remove(ctx context.Context, userID string, mediaID int64) (int64, error)
}

type favoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID string, mediaID int64) (*models.Favorite, error) {
	insert := `
	INSERT INTO favorites (user_id, media_id, created_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (user_id, media_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, userID, mediaID); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	var f models.Favorite
	err := r.db.QueryRow(ctx,
		"SELECT id, user_id, media_id, created_at FROM favorites WHERE user_id = $1 AND media_id = $2",
		userID, mediaID).
		Scan(&f.ID, &f.UserID, &f.MediaID, &f.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &f, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoriteWithMedia, error) {
	query := `
	SELECT f.id, f.user_id, f.media_id, f.created_at,
	       m.id, m.tmdb_id, m.type, m.title, m.overview, m.poster_path, m.release_date, m.vote_average, m.created_at
	FROM favorites f
	JOIN media m ON m.id = f.media_id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	results := []models.FavoriteWithMedia{}
	for rows.Next() {
		var fav models.FavoriteWithMedia
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.MediaID, &fav.CreatedAt,
			&fav.Media.ID, &fav.Media.TmdbID, &fav.Media.Type, &fav.Media.Title,
			&fav.Media.Overview, &fav.Media.PosterPath, &fav.Media.ReleaseDate,
			&fav.Media.VoteAverage, &fav.Media.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		results = append(results, fav)
	}
	return results, rows.Err()
}

func (r *favoriteRepository) Remove(ctx context.Context, userID string, mediaID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND media_id = $2", userID, mediaID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return tag.RowsAffected(), nil
}
