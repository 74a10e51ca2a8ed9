package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "ticketdesk/internal/errors"
)

// bindAndValidate decodes the request body into req and runs its
// validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return c.Validate(req)
}

// pathID parses the :id parameter. A malformed id is returned as uuid.Nil,
// which matches no row.
func pathID(c echo.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
