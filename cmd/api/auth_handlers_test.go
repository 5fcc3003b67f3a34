package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestRegisterHandler(t *testing.T) {
	app, store := NewTestApplication(t)
	handler := http.HandlerFunc(app.register)

	t.Run("success", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/register", `{"email": "a@x.com", "password": "pass1234"}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "a@x.com", user["email"])
		assert.NotContains(t, recorder.Body.String(), "password", "hash must never leave the server")
	})
	t.Run("duplicate email", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/register", `{"email": "a@x.com", "password": "pass1234"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Len(t, store.users, 1)
	})
	t.Run("invalid email", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/register", `{"email": "nonsense", "password": "pass1234"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
	t.Run("short password", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/register", `{"email": "b@x.com", "password": "abc"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	app, _ := NewTestApplication(t)
	registered := postJSON(t, http.HandlerFunc(app.register), "/auth/register", `{"email": "a@x.com", "password": "pass1234"}`)
	require.Equal(t, http.StatusOK, registered.Code)
	handler := http.HandlerFunc(app.login)

	t.Run("success", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/login", `{"username": "a@x.com", "password": "pass1234"}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data["access_token"])
		assert.Equal(t, "bearer", resp.Data["token_type"])
	})
	t.Run("wrong password", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/login", `{"username": "a@x.com", "password": "wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("unknown email", func(t *testing.T) {
		recorder := postJSON(t, handler, "/auth/login", `{"username": "nobody@x.com", "password": "pass1234"}`)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	app, _ := NewTestApplication(t)
	registered := postJSON(t, http.HandlerFunc(app.register), "/auth/register", `{"email": "a@x.com", "password": "pass1234"}`)
	require.Equal(t, http.StatusOK, registered.Code)
	loggedIn := postJSON(t, http.HandlerFunc(app.login), "/auth/login", `{"username": "a@x.com", "password": "pass1234"}`)
	require.Equal(t, http.StatusOK, loggedIn.Code)

	var login Response
	require.NoError(t, json.Unmarshal(loggedIn.Body.Bytes(), &login))
	token := login.Data["access_token"].(string)

	protected := app.Authenticate(app.requireAuthenticatedUser(http.HandlerFunc(app.me)))

	t.Run("with token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		protected.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		user := resp.Data["user"].(map[string]any)
		assert.Equal(t, "a@x.com", user["email"])
	})
	t.Run("without token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		protected.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
