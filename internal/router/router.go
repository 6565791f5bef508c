// Package router assembles the echo engine: global middleware, request
// validation, error rendering and the route table.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// Validator adapts go-playground/validator to echo's Validate hook and maps
// its failures into the application's validation error shape.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(fe.Field(), fmt.Sprintf("%v", fe.Value()),
			fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag()))
	}
	return err
}

// Register wires middleware and routes onto e.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	jwtSvc *auth.JWTService,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	postH *handler.PostHandler,
	commentH *handler.CommentHandler,
	adminH *handler.AdminHandler,
) {
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(cfg)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoswagger.WrapHandler)

	requireAuth := []echo.MiddlewareFunc{
		middleware.AccessToken(jwtSvc),
		middleware.LoadUser(authSvc),
	}
	// Credential endpoints share one in-memory rate limiter bucket per
	// client IP. Burst must be set explicitly: the store derives it from the
	// per-second rate otherwise, which truncates to zero for per-minute
	// limits and would reject every request.
	authLimiter := echomw.RateLimiter(echomw.NewRateLimiterMemoryStoreWithConfig(
		echomw.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(cfg.AuthRatePerMinute) / 60.0),
			Burst: cfg.AuthRatePerMinute,
		}))

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authH.Register, authLimiter)
	authGroup.POST("/login", authH.Login, authLimiter)
	authGroup.POST("/refresh", authH.Refresh, authLimiter)
	// Logout only needs a verified token; a deactivated user can still log
	// out, so LoadUser is skipped.
	authGroup.POST("/logout", authH.Logout, middleware.AccessToken(jwtSvc))
	authGroup.GET("/me", authH.Me, requireAuth...)
	authGroup.POST("/change-password", authH.ChangePassword, requireAuth...)

	posts := api.Group("/posts")
	posts.GET("", postH.List)
	posts.GET("/my", postH.My, requireAuth...)
	posts.GET("/:id", postH.Get, middleware.OptionalUser(jwtSvc, authSvc))
	posts.POST("", postH.Create, requireAuth...)
	posts.PUT("/:id", postH.Update, requireAuth...)
	posts.DELETE("/:id", postH.Delete, requireAuth...)
	posts.GET("/:id/comments", commentH.ListForPost)
	posts.POST("/:id/comments", commentH.Create, requireAuth...)

	api.DELETE("/comments/:id", commentH.Delete, requireAuth...)

	admin := api.Group("/admin", append(requireAuth, middleware.RequireRole(model.RoleAdmin))...)
	admin.GET("/users", adminH.ListUsers)
	admin.GET("/users/:id", adminH.GetUser)
	admin.POST("/users/:id/toggle", adminH.ToggleUser)
	admin.GET("/posts", adminH.ListPosts)
}

// newHTTPErrorHandler renders every error as an ErrorResponse. Unknown
// errors log at error level and surface their message only in development.
func newHTTPErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, apperrors.ErrorResponse{
				Error:   http.StatusText(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			})
			return
		}

		mapped := apperrors.MapErrorToHTTP(err)
		if mapped.StatusCode == http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
			if cfg.IsDevelopment() {
				mapped.Response.Message = err.Error()
			}
		}
		_ = c.JSON(mapped.StatusCode, mapped.Response)
	}
}
