package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviemagic/internal/models"
)

func TestAddFavoriteIsIdempotent(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/favorites", "token-u1", `{"media_id": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// second POST for the same (user, media) pair must not create a second row
	rec = env.do(t, http.MethodPost, "/favorites", "token-u1", `{"media_id": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.favorites.added, 1)

	// a different user favoriting the same media is a new row
	rec = env.do(t, http.MethodPost, "/favorites", "token-u2", `{"media_id": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.favorites.added, 2)
}

func TestAddFavoriteValidation(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/favorites", "token-u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.favorites.added)
}

func TestRemoveFavoriteIdempotent(t *testing.T) {
	env := newTestEnv()

	// deleting a favorite that was never added is still a 200
	rec := env.do(t, http.MethodDelete, "/favorites/3", "token-u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Favorite removed successfully")

	env.do(t, http.MethodPost, "/favorites", "token-u1", `{"media_id": 3}`)
	rec = env.do(t, http.MethodDelete, "/favorites/3", "token-u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.favorites.added)
}

func TestRemoveFavoriteScopedToPrincipal(t *testing.T) {
	env := newTestEnv()

	env.do(t, http.MethodPost, "/favorites", "token-u1", `{"media_id": 3}`)

	// another principal deleting the same media id touches nothing
	rec := env.do(t, http.MethodDelete, "/favorites/3", "token-u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.favorites.added, 1)
}

func TestListFavorites(t *testing.T) {
	env := newTestEnv()
	env.favorites.list = []models.FavoriteWithMedia{
		{
			Favorite: models.Favorite{ID: 1, UserID: "u1", MediaID: 3},
			Media:    models.Media{ID: 3, TmdbID: 603, Type: "movie", Title: "The Matrix"},
		},
	}

	rec := env.do(t, http.MethodGet, "/favorites", "token-u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"media"`)
	assert.Contains(t, rec.Body.String(), "The Matrix")
}

func TestFavoritesRequireAuth(t *testing.T) {
	env := newTestEnv()

	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/favorites"},
		{http.MethodGet, "/favorites"},
		{http.MethodDelete, "/favorites/3"},
	} {
		rec := env.do(t, tt.method, tt.path, "", `{"media_id": 3}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
	}
	assert.Empty(t, env.favorites.added)
	assert.Empty(t, env.favorites.removed)
}
