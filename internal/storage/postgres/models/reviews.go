package models

import (
	"context"
	"errors"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"
	"moviekeeper/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type ReviewModel struct {
	DB *postgres.Storage
}

const reviewColumns = "id, text, score, movie_id, user_id, created_at"

// lockMovie serializes review mutations per movie so that two concurrent
// mutations cannot both recompute the aggregate from a stale score set.
// Returns storage.ErrNotFound when the movie does not exist.
func lockMovie(ctx context.Context, tx pgx.Tx, movieID int64) error {
	var id int64
	err := tx.QueryRow(ctx, "SELECT id FROM movies WHERE id = $1 FOR UPDATE", movieID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}
		return err
	}
	return nil
}

// recalcRating recomputes the movie's aggregate from every review score
// visible inside the transaction, after the triggering write.
func recalcRating(ctx context.Context, tx pgx.Tx, movieID int64) error {
	_, err := tx.Exec(
		ctx,
		`UPDATE movies
		SET rating = (SELECT COALESCE(AVG(score), 0.0) FROM reviews WHERE movie_id = $1)
		WHERE id = $1`,
		movieID,
	)
	return err
}

// Insert adds a review and recomputes the movie's aggregate rating in the
// same transaction. Either both commit or neither does.
func (m *ReviewModel) Insert(ctx context.Context, text *string, score float64, movieID, userID int64) (*models.Review, error) {
	var review models.Review
	err := m.DB.WithTx(ctx, func(tx pgx.Tx) error {
		if err := lockMovie(ctx, tx, movieID); err != nil {
			return err
		}
		rows, _ := tx.Query(
			ctx,
			"INSERT INTO reviews (text, score, movie_id, user_id) VALUES ($1, $2, $3, $4) RETURNING "+reviewColumns,
			text,
			score,
			movieID,
			userID,
		)
		collected, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
		if err != nil {
			return err
		}
		review = collected
		return recalcRating(ctx, tx, movieID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Update rewrites a review's text and score, scoped to its author, and
// recomputes the movie's aggregate in the same transaction.
func (m *ReviewModel) Update(ctx context.Context, id, userID int64, text *string, score float64) (*models.Review, error) {
	var review models.Review
	err := m.DB.WithTx(ctx, func(tx pgx.Tx) error {
		var movieID int64
		err := tx.QueryRow(ctx, "SELECT movie_id FROM reviews WHERE id = $1 AND user_id = $2", id, userID).Scan(&movieID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := lockMovie(ctx, tx, movieID); err != nil {
			return err
		}
		rows, _ := tx.Query(
			ctx,
			"UPDATE reviews SET text = $1, score = $2 WHERE id = $3 AND user_id = $4 RETURNING "+reviewColumns,
			text,
			score,
			id,
			userID,
		)
		collected, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			return err
		}
		review = collected
		return recalcRating(ctx, tx, movieID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review, scoped to its author, and recomputes the former
// movie's aggregate in the same transaction.
func (m *ReviewModel) Delete(ctx context.Context, id, userID int64) error {
	return m.DB.WithTx(ctx, func(tx pgx.Tx) error {
		var movieID int64
		err := tx.QueryRow(ctx, "SELECT movie_id FROM reviews WHERE id = $1 AND user_id = $2", id, userID).Scan(&movieID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := lockMovie(ctx, tx, movieID); err != nil {
			return err
		}
		status, err := tx.Exec(ctx, "DELETE FROM reviews WHERE id = $1 AND user_id = $2", id, userID)
		if err != nil {
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return recalcRating(ctx, tx, movieID)
	})
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Conn.Query(
		ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE movie_id = $1 ORDER BY id",
		movieID,
	)
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
