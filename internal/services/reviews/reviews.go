package reviews

import (
	"context"
	"errors"
	"log/slog"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"
)

// ReviewsStorage is expected to run each mutation and the aggregate-rating
// recomputation of the affected movie as a single atomic unit.
type ReviewsStorage interface {
	Insert(ctx context.Context, text *string, score float64, movieID, userID int64) (*models.Review, error)
	Update(ctx context.Context, id, userID int64, text *string, score float64) (*models.Review, error)
	Delete(ctx context.Context, id, userID int64) error
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type MovieGetter interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type ReviewService struct {
	log     *slog.Logger
	storage ReviewsStorage
	movies  MovieGetter
}

func New(log *slog.Logger, storage ReviewsStorage, movies MovieGetter) *ReviewService {
	return &ReviewService{
		log:     log,
		storage: storage,
		movies:  movies,
	}
}

// Add records a review from any authenticated user and recomputes the
// movie's aggregate rating in the same transaction.
func (s *ReviewService) Add(ctx context.Context, authorID, movieID int64, score float64, text *string) (*models.Review, error) {
	const op = "reviews.ReviewService.Add"
	log := s.log.With("op", op, "author_id", authorID, "movie_id", movieID)
	if score < 0 || score > 5 {
		return nil, ErrInvalidScore
	}
	review, err := s.storage.Insert(ctx, text, score, movieID, authorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	const op = "reviews.ReviewService.ListForMovie"
	log := s.log.With("op", op, "movie_id", movieID)
	if _, err := s.movies.Get(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	reviews, err := s.storage.ListForMovie(ctx, movieID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return reviews, nil
}

// Update rewrites a review's score and text. Only the author may edit;
// anyone else's review reads as not found.
func (s *ReviewService) Update(ctx context.Context, authorID, reviewID int64, score float64, text *string) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "author_id", authorID, "review_id", reviewID)
	if score < 0 || score > 5 {
		return nil, ErrInvalidScore
	}
	review, err := s.storage.Update(ctx, reviewID, authorID, text, score)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// Delete removes the author's review and recomputes the former movie's
// aggregate in the same transaction.
func (s *ReviewService) Delete(ctx context.Context, authorID, reviewID int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "author_id", authorID, "review_id", reviewID)
	if err := s.storage.Delete(ctx, reviewID, authorID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
