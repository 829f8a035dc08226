package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/auth"
	"moviemagic/internal/models"
	"moviemagic/internal/repository"
)

// stubVerifier accepts tokens of the form "token-<user id>".
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*auth.Principal, error) {
	if id, ok := strings.CutPrefix(token, "token-"); ok {
		return &auth.Principal{ID: id}, nil
	}
	return nil, auth.ErrInvalidCredential
}

type stubMediaRepo struct {
	searches []repository.MediaSearch
	results  []models.Media
	item     *models.Media
	err      error
}

func (s *stubMediaRepo) Search(_ context.Context, q repository.MediaSearch) ([]models.Media, error) {
	s.searches = append(s.searches, q)
	return s.results, s.err
}

func (s *stubMediaRepo) GetByID(_ context.Context, id int64) (*models.Media, error) {
	if s.item == nil {
		return nil, repository.ErrNotFound
	}
	return s.item, s.err
}

func (s *stubMediaRepo) Upsert(_ context.Context, _ *models.Media) error { return s.err }

type stubReviewRepo struct {
	stored  *models.Review
	created []models.Review
	updated bool
	deleted bool
	listErr error
	list    []models.ReviewWithAuthor
}

func (s *stubReviewRepo) Create(_ context.Context, r *models.Review) (*models.Review, error) {
	created := *r
	created.ID = 101
	created.CreatedAt = time.Now()
	s.created = append(s.created, created)
	return &created, nil
}

func (s *stubReviewRepo) GetByID(_ context.Context, id int64) (*models.Review, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, repository.ErrNotFound
	}
	return s.stored, nil
}

func (s *stubReviewRepo) ListByMedia(_ context.Context, _ int64) ([]models.ReviewWithAuthor, error) {
	return s.list, s.listErr
}

func (s *stubReviewRepo) Update(_ context.Context, id int64, rating int, text string) (*models.Review, error) {
	if s.stored == nil || s.stored.ID != id {
		return nil, repository.ErrNotFound
	}
	s.updated = true
	updated := *s.stored
	updated.Rating = rating
	updated.ReviewText = text
	return &updated, nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id int64) error {
	if s.stored == nil || s.stored.ID != id {
		return repository.ErrNotFound
	}
	s.deleted = true
	return nil
}

type stubProfileRepo struct {
	profile *models.Profile
	updates map[string]string
}

func (s *stubProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	if s.profile == nil || s.profile.ID != id {
		return nil, repository.ErrNotFound
	}
	return s.profile, nil
}

func (s *stubProfileRepo) UpdateUsername(_ context.Context, id, username string) (*models.Profile, error) {
	if s.updates == nil {
		s.updates = map[string]string{}
	}
	s.updates[id] = username
	return &models.Profile{ID: id, Username: &username}, nil
}

type stubFavoriteRepo struct {
	added   []models.Favorite
	removed []int64
	list    []models.FavoriteWithMedia
}

func (s *stubFavoriteRepo) Add(_ context.Context, userID string, mediaID int64) (*models.Favorite, error) {
	for _, f := range s.added {
		if f.UserID == userID && f.MediaID == mediaID {
			return &f, nil
		}
	}
	fav := models.Favorite{ID: int64(len(s.added) + 1), UserID: userID, MediaID: mediaID, CreatedAt: time.Now()}
	s.added = append(s.added, fav)
	return &fav, nil
}

func (s *stubFavoriteRepo) ListByUser(_ context.Context, _ string) ([]models.FavoriteWithMedia, error) {
	return s.list, nil
}

func (s *stubFavoriteRepo) Remove(_ context.Context, userID string, mediaID int64) (int64, error) {
	for i, f := range s.added {
		if f.UserID == userID && f.MediaID == mediaID {
			s.added = append(s.added[:i], s.added[i+1:]...)
			s.removed = append(s.removed, mediaID)
			return 1, nil
		}
	}
	return 0, nil
}

type stubTrendingRepo struct {
	entries []models.TrendingWithMedia
	calls   int
}

func (s *stubTrendingRepo) List(_ context.Context, _ string) ([]models.TrendingWithMedia, error) {
	s.calls++
	// mirror the store-side cap
	if len(s.entries) > 20 {
		return s.entries[:20], nil
	}
	return s.entries, nil
}

type stubCatalog struct {
	detail *models.TMDBDetail
	err    error
	calls  int
}

func (s *stubCatalog) Detail(_ context.Context, _ string, _ int64) (*models.TMDBDetail, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

type testEnv struct {
	media     *stubMediaRepo
	reviews   *stubReviewRepo
	profiles  *stubProfileRepo
	favorites *stubFavoriteRepo
	trending  *stubTrendingRepo
	catalog   *stubCatalog
	router    http.Handler
}

func newTestEnv() *testEnv {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	env := &testEnv{
		media:     &stubMediaRepo{results: []models.Media{}},
		reviews:   &stubReviewRepo{},
		profiles:  &stubProfileRepo{},
		favorites: &stubFavoriteRepo{},
		trending:  &stubTrendingRepo{},
		catalog:   &stubCatalog{},
	}
	env.router = NewRouter(RouterConfig{
		Verifier:  stubVerifier{},
		Media:     env.media,
		Reviews:   env.reviews,
		Profiles:  env.profiles,
		Favorites: env.favorites,
		Trending:  env.trending,
		Catalog:   env.catalog,
		Logger:    log,
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
