package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/hash"
	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/tokens"
	"github.com/shopstack/shopstack/internal/transport"
)

const SessionTTL = 24 * time.Hour

type AuthService struct {
	Repo          *repo.GormRepo
	SessionSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	var fields []transport.FieldError
	if req.Email == "" {
		fields = append(fields, transport.FieldError{Field: "email", Reason: "required"})
	}
	if req.Password == "" {
		fields = append(fields, transport.FieldError{Field: "password", Reason: "required"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         "user",
	}
	// The unique email index is the authority on duplicates; a
	// check-then-create would race with concurrent registrations.
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// SignIn checks the credentials and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, req transport.SignInRequest) (*models.User, string, error) {
	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", ErrBadCredentials
	}

	token, err := tokens.NewSessionToken(&tokens.SessionClaims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: tokens.RegisteredClaimsFor(user.ID.String(), SessionTTL),
	}, s.SessionSecret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
