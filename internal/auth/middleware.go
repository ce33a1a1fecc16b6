package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "rentier/internal/errors"
)

// ContextKey is the echo context key under which guard middleware stores the
// resolved session.
const ContextKey = "session"

// FromContext returns the session a guard middleware resolved for this
// request. Routes behind a guard always have one; elsewhere the anonymous
// zero session is returned.
func FromContext(c echo.Context) *Session {
	if s, ok := c.Get(ContextKey).(*Session); ok {
		return s
	}
	return &Session{}
}

// WriteCookie sets the session cookie on the response.
func WriteCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Guard protects browser routes. An anonymous caller never reaches the
// handler: the requested destination is stashed on the session and the caller
// is bounced to loginPath with a 303, so a later successful login can return
// them exactly once.
func (m *Manager) Guard(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var session *Session
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				if s, err := m.Resolve(ctx, cookie.Value); err == nil {
					session = s
				}
			}

			if session != nil && session.Authenticated() {
				c.Set(ContextKey, session)
				return next(c)
			}

			if session == nil {
				s, token, err := m.Begin(ctx)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not start session")
				}
				session = s
				WriteCookie(c, token, session.TTL())
			}
			if err := m.StashRedirect(ctx, session, c.Request().RequestURI); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not record destination")
			}
			return c.Redirect(http.StatusSeeOther, loginPath)
		}
	}
}

// SessionFromToken upgrades a cookie token already verified by echo-jwt into
// a resolved, authenticated session. A destroyed session fails here even
// though its token signature is still valid, so logout is immediate.
func (m *Manager) SessionFromToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated()
			}
			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok {
				return unauthenticated()
			}
			id, err := uuid.Parse(claims.ID)
			if err != nil {
				return unauthenticated()
			}
			session, err := m.store.Get(c.Request().Context(), id)
			if err != nil || !session.Authenticated() {
				return unauthenticated()
			}
			c.Set(ContextKey, session)
			return next(c)
		}
	}
}

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Error: "authentication required",
		Code:  "UNAUTHENTICATED",
	})
}
