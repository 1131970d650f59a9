package auth

import (
	"context"
	"errors"
	"time"

	"hrms/internal/domain/apperror"
)

type userSource interface {
	FindByEmail(ctx context.Context, email string) (credentials, error)
	FindByID(ctx context.Context, id string) (credentials, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

type Service struct {
	Store     userSource
	JWTSecret string
	JWTExpiry time.Duration
}

func NewService(store *Store, secret string, expiry time.Duration) *Service {
	return &Service{Store: store, JWTSecret: secret, JWTExpiry: expiry}
}

// Login verifies credentials and issues a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	creds, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return User{}, "", apperror.ErrAuthorization
		}
		return User{}, "", err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return User{}, "", apperror.ErrAuthorization
	}

	token, err := GenerateToken(s.JWTSecret, Claims{UserID: creds.ID, Role: string(creds.Role)}, s.JWTExpiry)
	if err != nil {
		return User{}, "", err
	}
	if err := s.Store.UpdateLastLogin(ctx, creds.ID); err != nil {
		return User{}, "", err
	}
	return creds.User, token, nil
}

// ResolveActor maps a bearer token to the acting identity. The role and
// managed-department set are read from the store on every request, so a
// revoked user or a changed assignment takes effect immediately.
func (s *Service) ResolveActor(ctx context.Context, token string) (Actor, error) {
	claims, err := ParseToken(s.JWTSecret, token)
	if err != nil {
		return Actor{}, apperror.ErrAuthorization
	}
	creds, err := s.Store.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return Actor{}, apperror.ErrAuthorization
		}
		return Actor{}, err
	}
	return creds.Actor(), nil
}

func (s *Service) UserByID(ctx context.Context, id string) (User, error) {
	creds, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	return creds.User, nil
}
