package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.Authenticate)
	router.Get("/healthcheck", app.healthcheck)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.register)
		r.Post("/login", app.login)
		r.With(app.requireAuthenticatedUser).Get("/me", app.me)
	})
	router.Route("/movies", func(r chi.Router) {
		r.Use(app.requireAuthenticatedUser)
		r.Post("/add", app.addMovie)
		r.Post("/add-custom", app.addCustomMovie)
		r.Get("/my", app.getMyMovies)
		r.Delete("/delete/{id}", app.deleteMovie)
		r.Patch("/{id}/rate", app.rateMovie)
	})
	router.Route("/reviews", func(r chi.Router) {
		r.Get("/get/{movieId}", app.getReviews)
		r.With(app.requireAuthenticatedUser).Post("/add", app.addReview)
		r.With(app.requireAuthenticatedUser).Patch("/edit/{id}", app.editReview)
		r.With(app.requireAuthenticatedUser).Delete("/delete/{id}", app.deleteReview)
	})
	return router
}
