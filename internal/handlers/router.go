package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"moviemagic/internal/auth"
	"moviemagic/internal/repository"
)

// RouterConfig carries everything the route table needs; all of it is
// immutable once the router is built.
type RouterConfig struct {
	Verifier  auth.Verifier
	Media     repository.MediaRepository
	Reviews   repository.ReviewRepository
	Profiles  repository.ProfileRepository
	Favorites repository.FavoriteRepository
	Trending  repository.TrendingRepository
	Catalog   CatalogDetail
	Logger    *logrus.Logger
}

// NewRouter wires the full route table. Public reads are open; every
// mutating or personal route sits behind RequireAuth.
func NewRouter(config RouterConfig) http.Handler {
	mediaHandler := NewMediaHandler(config.Media, config.Logger)
	reviewHandler := NewReviewHandler(config.Reviews, config.Logger)
	profileHandler := NewProfileHandler(config.Profiles, config.Logger)
	trendingHandler := NewTrendingHandler(config.Trending, config.Logger)
	favoriteHandler := NewFavoriteHandler(config.Favorites, config.Logger)
	externalHandler := NewExternalHandler(config.Catalog, config.Logger)

	requireAuth := RequireAuth(config.Verifier)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Movie Magic server"})
	})

	r.Route("/media", func(r chi.Router) {
		r.Get("/search", mediaHandler.Search)
		r.Get("/{id}", mediaHandler.Get)
		r.Get("/{id}/reviews", reviewHandler.ListByMedia)
	})

	r.Get("/movies/external/{id}", externalHandler.MovieDetail)
	r.Get("/tv/external/{id}", externalHandler.TVDetail)

	r.Get("/trending", trendingHandler.List)

	r.Route("/reviews", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", reviewHandler.Create)
		r.Put("/{id}", reviewHandler.Update)
		r.Delete("/{id}", reviewHandler.Delete)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", profileHandler.Get)
		r.Put("/", profileHandler.Update)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", favoriteHandler.Add)
		r.Get("/", favoriteHandler.List)
		r.Delete("/{media_id}", favoriteHandler.Remove)
	})

	return r
}
