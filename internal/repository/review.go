package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"moviemagic/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByMedia(ctx context.Context, mediaID int64) ([]models.ReviewWithAuthor, error)
	Update(ctx context.Context, id int64, rating int, reviewText string) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = "id, media_id, user_id, rating, review_text, created_at"

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	query := `
	INSERT INTO reviews (media_id, user_id, rating, review_text, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING ` + reviewColumns

	var created models.Review
	err := r.db.QueryRow(ctx, query, review.MediaID, review.UserID, review.Rating, review.ReviewText).
		Scan(&created.ID, &created.MediaID, &created.UserID, &created.Rating,
			&created.ReviewText, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &created, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.QueryRow(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = $1", id).
		Scan(&review.ID, &review.MediaID, &review.UserID, &review.Rating,
			&review.ReviewText, &review.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByMedia(ctx context.Context, mediaID int64) ([]models.ReviewWithAuthor, error) {
	query := `
	SELECT r.id, r.media_id, r.user_id, r.rating, r.review_text, r.created_at, p.username
	FROM reviews r
	LEFT JOIN profiles p ON p.id = r.user_id
	WHERE r.media_id = $1
	ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, mediaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	results := []models.ReviewWithAuthor{}
	for rows.Next() {
		var rv models.ReviewWithAuthor
		if err := rows.Scan(&rv.ID, &rv.MediaID, &rv.UserID, &rv.Rating,
			&rv.ReviewText, &rv.CreatedAt, &rv.Author.Username); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		results = append(results, rv)
	}
	return results, rows.Err()
}

// Update touches rating and text only; user_id and media_id are immutable.
// A concurrent delete between the caller's ownership check and this update
// comes back as ErrNotFound.
func (r *reviewRepository) Update(ctx context.Context, id int64, rating int, reviewText string) (*models.Review, error) {
	query := `
	UPDATE reviews
	SET rating = $2, review_text = $3
	WHERE id = $1
	RETURNING ` + reviewColumns

	var updated models.Review
	err := r.db.QueryRow(ctx, query, id, rating, reviewText).
		Scan(&updated.ID, &updated.MediaID, &updated.UserID, &updated.Rating,
			&updated.ReviewText, &updated.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &updated, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
