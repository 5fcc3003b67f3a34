package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type Movie struct {
	ID          int64     `json:"id"`
	TmdbID      *int64    `json:"tmdb_id,omitempty"` // set when sourced from the external catalog
	Title       string    `json:"title"`
	Genre       *string   `json:"genre,omitempty"`
	Description *string   `json:"description,omitempty"`
	Rating      float64   `json:"rating"` // mean of review scores, or an owner override
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"-"`
}

type Review struct {
	ID        int64     `json:"id"`
	Text      *string   `json:"text"`
	Score     float64   `json:"score"`
	MovieID   int64     `json:"movie_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"-"`
}

type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
