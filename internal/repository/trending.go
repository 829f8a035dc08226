package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"moviemagic/internal/models"
)

// trendingLimit caps the trending feed regardless of what the client asks
// for; the cap lives in the query so no code path can widen it.
const trendingLimit = 20

type TrendingRepository interface {
	List(ctx context.Context, trendingType string) ([]models.TrendingWithMedia, error)
}

type trendingRepository struct {
	db *pgxpool.Pool
}

func NewTrendingRepository(db *pgxpool.Pool) TrendingRepository {
	return &trendingRepository{db: db}
}

func (r *trendingRepository) List(ctx context.Context, trendingType string) ([]models.TrendingWithMedia, error) {
	query := `
	SELECT t.id, t.media_id, t.trending_type, t.created_at,
	       m.id, m.tmdb_id, m.type, m.title, m.overview, m.poster_path, m.release_date, m.vote_average, m.created_at
	FROM trending t
	JOIN media m ON m.id = t.media_id
	`
	args := []any{}

	if trendingType != "" {
		args = append(args, trendingType)
		query += " WHERE t.trending_type = $1"
	}

	args = append(args, trendingLimit)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending: %w", err)
	}
	defer rows.Close()

	results := []models.TrendingWithMedia{}
	for rows.Next() {
		var entry models.TrendingWithMedia
		if err := rows.Scan(&entry.ID, &entry.MediaID, &entry.TrendingType, &entry.CreatedAt,
			&entry.Media.ID, &entry.Media.TmdbID, &entry.Media.Type, &entry.Media.Title,
			&entry.Media.Overview, &entry.Media.PosterPath, &entry.Media.ReleaseDate,
			&entry.Media.VoteAverage, &entry.Media.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trending row: %w", err)
		}
		results = append(results, entry)
	}
	return results, rows.Err()
}
