package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of its input; longer passwords are
// truncated before hashing and verification so both sides agree.
const maxPasswordBytes = 72

type UsersStorage interface {
	Insert(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	log      *slog.Logger
	storage  UsersStorage
	secret   string
	tokenTTL time.Duration
}

func New(log *slog.Logger, storage UsersStorage, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		storage:  storage,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// Register creates a user with a bcrypt hash of the password. The plaintext
// is never persisted or logged.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	const op = "auth.AuthService.Register"
	log := s.log.With("op", op, "email", email)
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("hashing password", "errMsg", err.Error())
		return nil, err
	}
	user, err := s.storage.Insert(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already registered")
			return nil, ErrEmailTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// Authenticate verifies email and password, returning the same error for an
// unknown email and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncatePassword(password)); err != nil {
		log.Info("wrong password")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
