package models

import "moviekeeper/proj/internal/storage/postgres"

type Models struct {
	User   *UserModel
	Movie  *MovieModel
	Review *ReviewModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:   &UserModel{db.Conn},
		Movie:  &MovieModel{db.Conn},
		Review: &ReviewModel{DB: db},
	}
}
