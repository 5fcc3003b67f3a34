package main

import (
	"errors"
	"net/http"

	"moviekeeper/proj/internal/lib/validator"
	"moviekeeper/proj/internal/services/movies"
)

type addMovieInput struct {
	TmdbID      int64   `json:"tmdb_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"max=100"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
	Rating      float64 `json:"rating"`
}

func (app *Application) addMovie(w http.ResponseWriter, r *http.Request) {
	var input addMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user := app.contextUser(r)
	movie, err := app.Services.Movies.Add(r.Context(), user.ID, movies.AddInput{
		TmdbID:      input.TmdbID,
		Title:       input.Title,
		Genre:       input.Genre,
		Description: input.Description,
		Rating:      input.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrUpstreamUnavailable):
			app.Http.BadGateway(w, r, err.Error())
		case errors.Is(err, movies.ErrInvalidRating):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type addCustomMovieInput struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
	Rating      float64 `json:"rating"`
}

func (app *Application) addCustomMovie(w http.ResponseWriter, r *http.Request) {
	var input addCustomMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user := app.contextUser(r)
	movie, err := app.Services.Movies.AddCustom(r.Context(), user.ID, movies.AddCustomInput{
		Title:       input.Title,
		Genre:       input.Genre,
		Description: input.Description,
		Rating:      input.Rating,
	})
	if err != nil {
		if errors.Is(err, movies.ErrInvalidRating) {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) getMyMovies(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	movieList, err := app.Services.Movies.ListOwned(r.Context(), user.ID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList}, "")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user := app.contextUser(r)
	if err := app.Services.Movies.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie deleted")
}

type rateMovieInput struct {
	Rating float64 `json:"rating"`
}

func (app *Application) rateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input rateMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	user := app.contextUser(r)
	movie, err := app.Services.Movies.SetRating(r.Context(), user.ID, id, input.Rating)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, movies.ErrInvalidRating):
			app.Http.BadRequest(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}
