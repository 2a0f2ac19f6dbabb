package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopstack/shopstack/internal/db"
	"github.com/shopstack/shopstack/internal/hash"
	"github.com/shopstack/shopstack/internal/httpserver"
	"github.com/shopstack/shopstack/internal/middleware"
	"github.com/shopstack/shopstack/internal/models"
	"github.com/shopstack/shopstack/internal/repo"
	"github.com/shopstack/shopstack/internal/service"
	"github.com/shopstack/shopstack/internal/tokens"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-session-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	gormRepo := repo.NewGormRepo(gormDB)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, SessionSecret: testSecret}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		SearchHandler:  &httpserver.SearchHTTP{},
		SessionSecret:  testSecret,
	})

	return &testEnv{T: t, E: e, DB: gormDB}
}

func (env *testEnv) createUser(email, role string) *models.User {
	env.T.Helper()

	passwordHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := &models.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: passwordHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) createProduct(id, name string, price float64) *models.Product {
	env.T.Helper()

	prod := &models.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       price,
	}
	require.NoError(env.T, env.DB.Create(prod).Error)
	return prod
}

func (env *testEnv) sessionCookie(user *models.User) *http.Cookie {
	env.T.Helper()

	token, err := tokens.NewSessionToken(&tokens.SessionClaims{
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		RegisteredClaims: tokens.RegisteredClaimsFor(user.ID.String(), service.SessionTTL),
	}, testSecret)
	require.NoError(env.T, err)

	return &http.Cookie{Name: middleware.SessionCookie, Value: token, Path: "/"}
}

func (env *testEnv) doJSON(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) models.Cart {
	t.Helper()

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	return cart
}
