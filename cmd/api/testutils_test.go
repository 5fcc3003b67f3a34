package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"moviekeeper/proj/internal/config"
	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/services"
	"moviekeeper/proj/internal/services/auth"
	"moviekeeper/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type fakeUsersStorage struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUsersStorage() *fakeUsersStorage {
	return &fakeUsersStorage{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUsersStorage) Insert(_ context.Context, email, passwordHash string) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, storage.ErrConflict
	}
	user := &models.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.nextID++
	f.users[email] = user
	return user, nil
}

func (f *fakeUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func NewTestApplication(t *testing.T) (*Application, *fakeUsersStorage) {
	t.Helper()
	cfg := &config.Config{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newFakeUsersStorage()
	app := &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Services: &services.Services{
			Auth: auth.New(log, store, "test-secret", time.Minute),
		},
		Http: &Http{log: log, cfg: cfg},
	}
	return app, store
}
