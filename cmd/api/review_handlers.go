package main

import (
	"errors"
	"net/http"

	"moviekeeper/proj/internal/lib/validator"
	"moviekeeper/proj/internal/services/reviews"
)

type addReviewInput struct {
	MovieID int64   `json:"movie_id" validate:"required,gt=0"`
	Score   float64 `json:"score"`
	Text    *string `json:"text"`
}

func (app *Application) addReview(w http.ResponseWriter, r *http.Request) {
	var input addReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user := app.contextUser(r)
	review, err := app.Services.Reviews.Add(r.Context(), user.ID, input.MovieID, input.Score, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, reviews.ErrInvalidScore):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	reviewList, err := app.Services.Reviews.ListForMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, reviews.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviewList}, "")
}

type editReviewInput struct {
	Score float64 `json:"score"`
	Text  *string `json:"text"`
}

func (app *Application) editReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input editReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	user := app.contextUser(r)
	review, err := app.Services.Reviews.Update(r.Context(), user.ID, id, input.Score, input.Text)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, reviews.ErrInvalidScore):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user := app.contextUser(r)
	if err := app.Services.Reviews.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, reviews.ErrReviewNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Review deleted")
}
