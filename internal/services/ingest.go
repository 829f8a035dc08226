package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"moviemagic/internal/models"
	"moviemagic/internal/repository"
)

// Catalog is the slice of the TMDB client the ingestor needs.
type Catalog interface {
	Popular(ctx context.Context, mediaType string, page int) (*models.TMDBListResponse, error)
}

// IngestService seeds the media table from the external catalog's popular
// feeds. It runs out of process from the gateway; rows are upserted keyed by
// tmdb_id so repeated runs are idempotent.
type IngestService struct {
	catalog Catalog
	media   repository.MediaRepository
	logger  *logrus.Logger
}

func NewIngestService(catalog Catalog, media repository.MediaRepository, logger *logrus.Logger) *IngestService {
	return &IngestService{
		catalog: catalog,
		media:   media,
		logger:  logger,
	}
}

// Run seeds one popular page per media type.
func (s *IngestService) Run(ctx context.Context) error {
	for _, mediaType := range []models.MediaType{models.MediaTypeMovie, models.MediaTypeTV} {
		if err := s.seedType(ctx, string(mediaType)); err != nil {
			return err
		}
	}
	return nil
}

// RunEvery runs an initial seed, then repeats on a ticker until ctx is done.
func (s *IngestService) RunEvery(ctx context.Context, interval time.Duration) {
	s.logger.WithField("interval", interval).Info("Starting ingest worker...")

	if err := s.Run(ctx); err != nil {
		s.logger.WithError(err).Error("Error seeding catalog")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Ingest worker stopped")
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.logger.WithError(err).Error("Error seeding catalog")
			}
		}
	}
}

func (s *IngestService) seedType(ctx context.Context, mediaType string) error {
	s.logger.WithField("type", mediaType).Info("Seeding catalog...")

	list, err := s.catalog.Popular(ctx, mediaType, 1)
	if err != nil {
		return fmt.Errorf("failed to fetch popular %s: %w", mediaType, err)
	}

	count := 0
	for _, item := range list.Results {
		media := &models.Media{
			TmdbID: item.ID,
			Type:   mediaType,
			Title:  item.DisplayTitle(),
		}
		if item.Overview != "" {
			media.Overview = &item.Overview
		}
		if item.PosterPath != "" {
			media.PosterPath = &item.PosterPath
		}
		if date := releaseDate(item, mediaType); date != "" {
			media.ReleaseDate = &date
		}
		if item.VoteAverage > 0 {
			media.VoteAverage = &item.VoteAverage
		}

		if err := s.media.Upsert(ctx, media); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"tmdb_id": item.ID,
				"type":    mediaType,
			}).Error("Error upserting media item")
			continue
		}
		count++
	}

	s.logger.WithFields(logrus.Fields{
		"type":  mediaType,
		"count": count,
	}).Info("Seeding completed")
	return nil
}

func releaseDate(item models.TMDBMedia, mediaType string) string {
	if mediaType == string(models.MediaTypeTV) {
		return item.FirstAirDate
	}
	return item.ReleaseDate
}
