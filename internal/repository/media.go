package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"moviemagic/internal/models"
)

// MediaSearch is a filtered catalog scan. Title is a case-insensitive
// substring match, Type an exact match; empty fields are skipped.
type MediaSearch struct {
	Title  string
	Type   string
	Offset int
	Limit  int
}

type MediaRepository interface {
	Search(ctx context.Context, q MediaSearch) ([]models.Media, error)
	GetByID(ctx context.Context, id int64) (*models.Media, error)
	Upsert(ctx context.Context, item *models.Media) error
}

type mediaRepository struct {
	db *pgxpool.Pool
}

func NewMediaRepository(db *pgxpool.Pool) MediaRepository {
	return &mediaRepository{db: db}
}

const mediaColumns = "id, tmdb_id, type, title, overview, poster_path, release_date, vote_average, created_at"

func (r *mediaRepository) Search(ctx context.Context, q MediaSearch) ([]models.Media, error) {
	query := "SELECT " + mediaColumns + " FROM media WHERE 1=1"
	args := []any{}

	if q.Title != "" {
		args = append(args, "%"+q.Title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if q.Type != "" {
		args = append(args, q.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	args = append(args, q.Limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))
	args = append(args, q.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search media: %w", err)
	}
	defer rows.Close()

	results := []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.TmdbID, &m.Type, &m.Title, &m.Overview,
			&m.PosterPath, &m.ReleaseDate, &m.VoteAverage, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*models.Media, error) {
	var m models.Media
	err := r.db.QueryRow(ctx, "SELECT "+mediaColumns+" FROM media WHERE id = $1", id).
		Scan(&m.ID, &m.TmdbID, &m.Type, &m.Title, &m.Overview,
			&m.PosterPath, &m.ReleaseDate, &m.VoteAverage, &m.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &m, nil
}

// Upsert inserts or refreshes a catalog row keyed by tmdb_id. Identity
// fields (tmdb_id, type) never change; title and attributes do.
func (r *mediaRepository) Upsert(ctx context.Context, item *models.Media) error {
	query := `
	INSERT INTO media (tmdb_id, type, title, overview, poster_path, release_date, vote_average, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (tmdb_id) DO UPDATE
	SET title = EXCLUDED.title,
	    overview = EXCLUDED.overview,
	    poster_path = EXCLUDED.poster_path,
	    release_date = EXCLUDED.release_date,
	    vote_average = EXCLUDED.vote_average
	`
	_, err := r.db.Exec(ctx, query, item.TmdbID, item.Type, item.Title,
		item.Overview, item.PosterPath, item.ReleaseDate, item.VoteAverage)
	if err != nil {
		return fmt.Errorf("failed to upsert media: %w", err)
	}
	return nil
}
