package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/middleware"
	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserListResponse wraps the user list.
type UserListResponse struct {
	Users []model.User `json:"users"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserListResponse{Users: users})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.ViewUser(c.Request().Context(), middleware.CurrentUser(c), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}
