package auth

import (
	"context"
	"errors"
	"time"

	"moviekeeper/proj/internal/domain/models"
	"moviekeeper/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 bearer token carrying the user's email as its
// subject and an absolute expiry at now + the configured TTL.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ResolveToken verifies signature and expiry and re-fetches the user by the
// embedded subject claim. Every failure mode collapses into ErrInvalidToken;
// callers translate it uniformly into an unauthorized response.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	const op = "auth.AuthService.ResolveToken"
	log := s.log.With("op", op)
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		log.Debug("token verification failed")
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		log.Debug("token has no subject")
		return nil, ErrInvalidToken
	}
	user, err := s.storage.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("token subject no longer exists", "email", claims.Subject)
			return nil, ErrInvalidToken
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}
