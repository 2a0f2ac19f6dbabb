package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/events"
	"github.com/shopstack/shopstack/internal/logging"
	"github.com/shopstack/shopstack/internal/middleware"
	"github.com/shopstack/shopstack/internal/service"
	"github.com/shopstack/shopstack/internal/tokens"
	"github.com/shopstack/shopstack/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *events.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		if ve, ok := service.AsValidationError(err); ok {
			l.Warn("register_invalid", "status", 400, "error", err)
			return validationJSON(c, ve.Fields)
		}
		if err == service.ErrUserExists {
			l.Warn("register_conflict", "status", 409, "email", req.Email)
			return errorJSON(c, http.StatusConflict, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userId": user.ID.String(),
		"email":  user.Email,
	})

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signin")

	var req transport.SignInRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_bad_body", "status", 400, "error", err)
		return validationJSON(c, []transport.FieldError{{Field: "body", Reason: "malformed json"}})
	}

	user, token, err := h.Svc.SignIn(ctx, req)
	if err != nil {
		if err == service.ErrBadCredentials {
			l.Warn("signin_rejected", "status", 401, "email", req.Email)
			return errorJSON(c, http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("signin_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}

	c.SetCookie(tokens.CreateCookie(middleware.SessionCookie, token, "/", time.Now().Add(service.SessionTTL)))

	publish(c, h.Producer, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_signed_in",
		"userId": user.ID.String(),
	})

	l.Info("user signed in", "user_id", user.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"sessionToken": token,
		"user":         user,
	})
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(middleware.SessionCookie, "/"))
	return c.JSON(http.StatusOK, map[string]any{"message": "signed out"})
}
