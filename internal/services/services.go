package services

import (
	"log/slog"

	"moviekeeper/proj/internal/clients/tmdb"
	"moviekeeper/proj/internal/config"
	"moviekeeper/proj/internal/services/auth"
	"moviekeeper/proj/internal/services/movies"
	"moviekeeper/proj/internal/services/reviews"
	"moviekeeper/proj/internal/storage/postgres"
	storagemodels "moviekeeper/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Movies  *movies.MovieService
	Reviews *reviews.ReviewService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage) *Services {
	models := storagemodels.New(storage)
	metadata := tmdb.New(log, cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout)
	return &Services{
		Auth:    auth.New(log, models.User, cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Movies:  movies.New(log, models.Movie, metadata),
		Reviews: reviews.New(log, models.Review, models.Movie),
	}
}
