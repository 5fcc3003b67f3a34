package models

import (
	"context"
	"errors"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

const movieColumns = "id, tmdb_id, title, genre, description, rating, owner_id, created_at"

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = $1",
		id,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// GetByTmdbID looks a movie up by its external catalog id within one owner's
// collection. Different owners may hold separate copies of the same title.
func (m *MovieModel) GetByTmdbID(ctx context.Context, tmdbID, ownerID int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT "+movieColumns+" FROM movies WHERE tmdb_id = $1 AND owner_id = $2",
		tmdbID,
		ownerID,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

type MovieInsertParams struct {
	TmdbID      *int64
	Title       string
	Genre       *string
	Description *string
	Rating      float64
	OwnerID     int64
}

func (m *MovieModel) Insert(ctx context.Context, params MovieInsertParams) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (tmdb_id, title, genre, description, rating, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+movieColumns,
		params.TmdbID,
		params.Title,
		params.Genre,
		params.Description,
		params.Rating,
		params.OwnerID,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) ListByOwner(ctx context.Context, ownerID int64) ([]models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		"SELECT "+movieColumns+" FROM movies WHERE owner_id = $1 ORDER BY id",
		ownerID,
	)
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Delete removes a movie owned by ownerID. Review rows go with it via
// the ON DELETE CASCADE constraint.
func (m *MovieModel) Delete(ctx context.Context, id, ownerID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateRating overwrites the aggregate rating field directly.
func (m *MovieModel) UpdateRating(ctx context.Context, id, ownerID int64, rating float64) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE movies SET rating = $1 WHERE id = $2 AND owner_id = $3 RETURNING "+movieColumns,
		rating,
		id,
		ownerID,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}
