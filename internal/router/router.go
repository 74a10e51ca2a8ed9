package router

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ticketdesk/internal/auth"
	"ticketdesk/internal/config"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/handler"
	"ticketdesk/internal/metrics"
	"ticketdesk/internal/middleware"
	"ticketdesk/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	userService service.UserService,
	rec *metrics.Recorder,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ticketHandler *handler.TicketHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: strings.Split(cfg.CORSOrigin, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/", healthHandler.Index)
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(rec.Handler()))

	authenticated := middleware.Authenticate(jwtService, userService)
	adminOnly := append(middleware.Authenticate(jwtService, userService), middleware.RequireAdmin)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/categories", categoryHandler.ListCategories)

	// Secured routes (require JWT authentication)
	e.GET("/auth/me", authHandler.Me, authenticated...)

	users := e.Group("/users", authenticated...)
	users.GET("", userHandler.ListUsers, middleware.RequireAdmin)
	users.GET("/:id", userHandler.GetUser)

	tickets := e.Group("/tickets", authenticated...)
	tickets.GET("", ticketHandler.ListTickets)
	tickets.POST("", ticketHandler.CreateTicket)
	tickets.GET("/:id", ticketHandler.GetTicket)
	tickets.PUT("/:id", ticketHandler.UpdateTicket)
	tickets.DELETE("/:id", ticketHandler.DeleteTicket, middleware.RequireAdmin)
	tickets.GET("/:id/timeline", ticketHandler.GetTimeline)

	// Admin routes
	e.POST("/categories", categoryHandler.CreateCategory, adminOnly...)
	e.PUT("/categories/:id", categoryHandler.UpdateCategory, adminOnly...)
	e.DELETE("/categories/:id", categoryHandler.DeleteCategory, adminOnly...)
}

var hexColor6 = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NewValidator returns the request validator. Field errors are reported
// under their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColor6.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
