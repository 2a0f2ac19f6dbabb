package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/shopstack/internal/transport"
)

// ErrorHandler renders every unhandled error as an {error: ...} body,
// including the router's own 404/405 responses.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.ErrorResponse{Error: msg})
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.ErrorResponse{Error: msg})
}

func validationJSON(c echo.Context, fields []transport.FieldError) error {
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{
		Error:   "invalid request body",
		Details: fields,
	})
}
