package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// Context keys set for authenticated requests
const (
	SessionCookie    = "session"
	ContextUserUID   = "userUID"
	ContextUserEmail = "userEmail"
	ContextUserName  = "userName"
	ContextIsAdmin   = "isAdmin"
)

// SessionVerifier checks Firebase session cookies. *auth.Client implements it.
type SessionVerifier interface {
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// RequireAuth returns a middleware that verifies the Firebase session cookie.
// Browsers are redirected to /login; API clients get a 401.
func RequireAuth(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if verifier == nil {
				return deny(c, "/login?error=auth_not_configured")
			}

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return deny(c, "/login")
			}

			decodedToken, err := verifier.VerifySessionCookie(c.Request().Context(), cookie.Value)
			if err != nil {
				// Invalid session, clear cookie
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
					Path:     "/",
				})
				return deny(c, "/login")
			}

			c.Set(ContextUserUID, decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set(ContextUserEmail, email)
			}
			if name, ok := decodedToken.Claims["name"].(string); ok {
				c.Set(ContextUserName, name)
			}
			admin, _ := decodedToken.Claims["admin"].(bool)
			c.Set(ContextIsAdmin, admin)

			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth. It rejects users without the
// admin custom claim.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if admin, _ := c.Get(ContextIsAdmin).(bool); !admin {
				return echo.NewHTTPError(http.StatusForbidden, "Administrator access required")
			}
			return next(c)
		}
	}
}

func deny(c echo.Context, loginURL string) error {
	if wantsJSON(c.Request()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to continue.")
	}
	return c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/admin/api/") ||
		strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
