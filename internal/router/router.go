package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"rentier/internal/auth"
	"rentier/internal/config"
	apperrors "rentier/internal/errors"
	"rentier/internal/handler"
)

// LoginPath is where guarded browser routes bounce anonymous callers.
const LoginPath = "/login"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.Manager,
	authHandler *handler.AuthHandler,
	predictionHandler *handler.PredictionHandler,
	historyHandler *handler.HistoryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", authHandler.Register)
	api.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// Guarded browser routes: anonymous callers are redirected to login and
	// brought back after it succeeds.
	guarded := e.Group("", sessions.Guard(LoginPath))
	guarded.GET("/predict", predictionHandler.Catalog)
	guarded.GET("/history", historyHandler.List)

	// Guarded API routes: the signed session cookie is verified by echo-jwt,
	// then resolved against the session store (so logout revokes access
	// immediately). Anonymous callers get 401, not a redirect.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + auth.SessionCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &jwt.RegisteredClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		},
	}), sessions.SessionFromToken())

	secured.POST("/predict", predictionHandler.Predict)
	secured.GET("/history", historyHandler.List)
	secured.GET("/history/:id", historyHandler.Get)
	secured.DELETE("/history/:id", historyHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
