package models

import "time"

type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ValidMediaType reports whether t names a known catalog media type.
func ValidMediaType(t string) bool {
	return t == string(MediaTypeMovie) || t == string(MediaTypeTV)
}

type Media struct {
	ID          int64     `json:"id" db:"id"`
	TmdbID      int64     `json:"tmdb_id" db:"tmdb_id"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Overview    *string   `json:"overview" db:"overview"`
	PosterPath  *string   `json:"poster_path" db:"poster_path"`
	ReleaseDate *string   `json:"release_date" db:"release_date"`
	VoteAverage *float64  `json:"vote_average" db:"vote_average"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Review.UserID is the identity provider's subject id and never changes
// after insert; it is the only field ownership checks consult.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	MediaID    int64     `json:"media_id" db:"media_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"`
	ReviewText string    `json:"review_text" db:"review_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type ReviewWithAuthor struct {
	Review
	Author ReviewAuthor `json:"profiles"`
}

type ReviewAuthor struct {
	Username *string `json:"username"`
}

// Profile.ID equals the identity provider's subject id, one row per principal.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Username  *string   `json:"username" db:"username"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Favorite rows are unique on (user_id, media_id).
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	MediaID   int64     `json:"media_id" db:"media_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type FavoriteWithMedia struct {
	Favorite
	Media Media `json:"media"`
}

type TrendingEntry struct {
	ID           int64     `json:"id" db:"id"`
	MediaID      int64     `json:"media_id" db:"media_id"`
	TrendingType string    `json:"trending_type" db:"trending_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type TrendingWithMedia struct {
	TrendingEntry
	Media Media `json:"media"`
}
