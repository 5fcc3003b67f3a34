package main

import (
	"errors"
	"net/http"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/lib/validator"
	"moviekeeper/proj/internal/services/auth"
)

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, err := app.Services.Auth.Register(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "Successfully registered")
}

type loginInput struct {
	Username string `json:"username" validate:"required" errorMsg:"Email is required"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	user, err := app.Services.Auth.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	token, err := app.Services.Auth.IssueToken(user)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	tokens := models.AuthTokens{AccessToken: token, TokenType: "bearer"}
	app.Http.Ok(w, r, envelop{"access_token": tokens.AccessToken, "token_type": tokens.TokenType}, "Successfully logged in")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	app.Http.Ok(w, r, envelop{"user": user}, "")
}
