package movies

import (
	"context"
	"errors"
	"log/slog"

	"moviekeeper/proj/internal/clients/tmdb"
	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"
	storagemodels "moviekeeper/proj/internal/storage/postgres/models"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	GetByTmdbID(ctx context.Context, tmdbID, ownerID int64) (*models.Movie, error)
	Insert(ctx context.Context, params storagemodels.MovieInsertParams) (*models.Movie, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Movie, error)
	Delete(ctx context.Context, id, ownerID int64) error
	UpdateRating(ctx context.Context, id, ownerID int64, rating float64) (*models.Movie, error)
}

type MovieService struct {
	log      *slog.Logger
	storage  MoviesStorage
	metadata tmdb.Provider
}

func New(log *slog.Logger, storage MoviesStorage, metadata tmdb.Provider) *MovieService {
	return &MovieService{
		log:      log,
		storage:  storage,
		metadata: metadata,
	}
}

type AddInput struct {
	TmdbID      int64
	Title       string
	Genre       *string
	Description *string
	Rating      float64
}

// Add stores an externally-catalogued movie for an owner. Adding the same
// tmdb id twice for one owner returns the existing record; missing
// descriptive fields are filled from the metadata API before persisting.
func (s *MovieService) Add(ctx context.Context, ownerID int64, input AddInput) (*models.Movie, error) {
	const op = "movies.MovieService.Add"
	log := s.log.With("op", op, "owner_id", ownerID, "tmdb_id", input.TmdbID)

	existing, err := s.storage.GetByTmdbID(ctx, input.TmdbID, ownerID)
	if err == nil {
		log.Info("movie already in collection", "movie_id", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}

	if input.Title == "" {
		info, err := s.metadata.GetMovie(ctx, input.TmdbID)
		if err != nil {
			if errors.Is(err, tmdb.ErrUnavailable) {
				log.Warn("metadata enrichment failed")
				return nil, ErrUpstreamUnavailable
			}
			log.Error(err.Error())
			return nil, err
		}
		input.Title = info.Title
		input.Genre = info.Genre
		input.Description = info.Description
	}

	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	tmdbID := input.TmdbID
	movie, err := s.storage.Insert(ctx, storagemodels.MovieInsertParams{
		TmdbID:      &tmdbID,
		Title:       input.Title,
		Genre:       input.Genre,
		Description: input.Description,
		Rating:      input.Rating,
		OwnerID:     ownerID,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

type AddCustomInput struct {
	Title       string
	Genre       *string
	Description *string
	Rating      float64
}

// AddCustom stores a movie from caller-supplied fields only, no enrichment.
func (s *MovieService) AddCustom(ctx context.Context, ownerID int64, input AddCustomInput) (*models.Movie, error) {
	const op = "movies.MovieService.AddCustom"
	log := s.log.With("op", op, "owner_id", ownerID, "title", input.Title)
	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	movie, err := s.storage.Insert(ctx, storagemodels.MovieInsertParams{
		Title:       input.Title,
		Genre:       input.Genre,
		Description: input.Description,
		Rating:      input.Rating,
		OwnerID:     ownerID,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) ListOwned(ctx context.Context, ownerID int64) ([]models.Movie, error) {
	const op = "movies.MovieService.ListOwned"
	log := s.log.With("op", op, "owner_id", ownerID)
	movies, err := s.storage.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movies, nil
}

// Delete removes an owned movie and, through the storage cascade, all of its
// reviews. A movie owned by someone else reads as not found.
func (s *MovieService) Delete(ctx context.Context, ownerID, movieID int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "owner_id", ownerID, "movie_id", movieID)
	if err := s.storage.Delete(ctx, movieID, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// SetRating overwrites the aggregate rating directly. The override holds
// only until the next review mutation recomputes the mean (last-writer-wins).
func (s *MovieService) SetRating(ctx context.Context, ownerID, movieID int64, rating float64) (*models.Movie, error) {
	const op = "movies.MovieService.SetRating"
	log := s.log.With("op", op, "owner_id", ownerID, "movie_id", movieID, "rating", rating)
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}
	movie, err := s.storage.UpdateRating(ctx, movieID, ownerID, rating)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}
