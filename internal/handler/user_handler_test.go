package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
)

func TestUserHandler(t *testing.T) {
	t.Run("list requires admin", func(t *testing.T) {
		h := newHarness(t)
		token := h.login(t, newUser(model.RoleUser))

		rec := h.do(http.MethodGet, "/users", "", token)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		h.users.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("list", func(t *testing.T) {
		h := newHarness(t)
		admin := newUser(model.RoleAdmin)
		token := h.login(t, admin)
		h.users.On("ListUsers", mock.Anything).Return([]model.User{*admin}, nil)

		rec := h.do(http.MethodGet, "/users", "", token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), admin.Email)
	})

	t.Run("other profile", func(t *testing.T) {
		h := newHarness(t)
		user := newUser(model.RoleUser)
		other := newUser(model.RoleUser)
		token := h.login(t, user)
		h.users.On("ViewUser", mock.Anything, user, other.ID).Return(nil, apperrors.ErrForbidden)

		rec := h.do(http.MethodGet, "/users/"+other.ID.String(), "", token)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("own profile", func(t *testing.T) {
		h := newHarness(t)
		user := newUser(model.RoleUser)
		token := h.login(t, user)
		h.users.On("ViewUser", mock.Anything, user, user.ID).Return(user, nil)

		rec := h.do(http.MethodGet, "/users/"+user.ID.String(), "", token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)
	})
}
