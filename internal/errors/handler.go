package errors

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewHTTPErrorHandler renders every error returned by a handler or
// middleware as an ErrorResponse. Server-side failures are logged.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse(time.Now()))
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}
