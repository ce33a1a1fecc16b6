package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rentier/internal/auth"
	apperrors "rentier/internal/errors"
	"rentier/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"confirm" validate:"required,eqfield=Password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	RememberMe bool   `json:"remember_me"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login and bind the session to a user
// @Description On success the session cookie is reissued. When a guarded
// @Description request was bounced to login earlier, the response is a
// @Description one-shot 303 back to that destination.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	session := h.resolveOrBegin(c)

	user, token, err := h.authService.Login(ctx, session, req.Email, req.Password, req.RememberMe)
	if err != nil {
		return mapError(err)
	}
	auth.WriteCookie(c, token, session.TTL())

	if target, err := h.sessions.ConsumeRedirect(ctx, session); err == nil && target != "" {
		return c.Redirect(http.StatusSeeOther, target)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		ID:         user.ID,
		Email:      user.Email,
		RememberMe: req.RememberMe,
	})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session. Calling it without a session is not an error.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		if session, err := h.sessions.Resolve(c.Request().Context(), cookie.Value); err == nil {
			if err := h.authService.Logout(c.Request().Context(), session); err != nil {
				return mapError(err)
			}
		}
	}
	auth.ClearCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// resolveOrBegin loads the caller's session from the cookie, or starts a
// fresh anonymous one when there is none.
func (h *AuthHandler) resolveOrBegin(c echo.Context) *auth.Session {
	ctx := c.Request().Context()
	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		if session, err := h.sessions.Resolve(ctx, cookie.Value); err == nil {
			return session
		}
	}
	session, token, err := h.sessions.Begin(ctx)
	if err == nil {
		auth.WriteCookie(c, token, session.TTL())
		return session
	}
	// Redis down: fall back to an unsaved session so login still reports the
	// real failure instead of a cookie error.
	return &auth.Session{}
}

// mapError translates a taxonomy error into the echo error shape.
func mapError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
