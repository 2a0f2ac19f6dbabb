package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/transport"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))

	return &AuthService{Repo: repo.NewGormRepo(db), SessionSecret: []byte("secret")}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := transport.RegisterRequest{Email: "test.user@example.com", Name: "Test User", Password: "password"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	// The duplicate surfaces from the unique index on insert and must map
	// to the conflict sentinel, not bubble up as an internal error.
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestSignInBadPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), transport.RegisterRequest{Email: "test.user@example.com", Password: "password"})
	require.NoError(t, err)

	_, _, err = svc.SignIn(context.Background(), transport.SignInRequest{Email: "test.user@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = svc.SignIn(context.Background(), transport.SignInRequest{Email: "nobody@example.com", Password: "password"})
	require.ErrorIs(t, err, ErrBadCredentials)
}
