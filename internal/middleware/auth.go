package middleware

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"ticketdesk/internal/auth"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

const (
	tokenContextKey    = "token"
	identityContextKey = "identity"
)

// JWT verifies the bearer token and stores its *auth.Claims under the
// "token" context key.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return apperrors.ErrUnauthenticated
			}
			return apperrors.ErrInvalidToken
		},
	})
}

// LoadIdentity resolves the token subject to a stored user. A valid token
// for a user that no longer exists is rejected.
func LoadIdentity(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(tokenContextKey).(*auth.Claims)
			if !ok {
				return apperrors.ErrUnauthenticated
			}
			id, err := claims.Identity()
			if err != nil {
				return apperrors.ErrInvalidToken
			}

			user, err := users.GetUser(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return apperrors.ErrUnknownIdentity
				}
				return err
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// Authenticate is JWT followed by LoadIdentity.
func Authenticate(jwtService *auth.JWTService, users service.UserService) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{JWT(jwtService), LoadIdentity(users)}
}

// RequireAdmin rejects non-admin identities. It must run after LoadIdentity.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentUser(c).IsAdmin() {
			return apperrors.ErrAdminRequired
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(identityContextKey).(*model.User)
	return user
}

// SetCurrentUser attaches an identity to the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(identityContextKey, user)
}
