package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/events"
	"github.com/shopstack/shopstack/internal/logging"
)

// userIDFromContext reads the principal resolved by the session middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return userID, nil
}

func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
