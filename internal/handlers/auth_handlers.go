package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/web/templates/pages"
)

const sessionLifetime = 5 * 24 * time.Hour

// SessionIssuer exchanges Firebase ID tokens for session cookies.
// *auth.Client implements it.
type SessionIssuer interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
}

// FirebaseWebConfig is the client-side Firebase configuration handed to the
// login and register pages
type FirebaseWebConfig struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	issuer       SessionIssuer
	settings     middleware.SettingsLoader
	web          FirebaseWebConfig
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. issuer may be nil when Firebase
// isn't configured; logins then fail with a server error.
func NewAuthHandler(issuer SessionIssuer, loader middleware.SettingsLoader, web FirebaseWebConfig, secureCookie bool) *AuthHandler {
	return &AuthHandler{issuer: issuer, settings: loader, web: web, secureCookie: secureCookie}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.authPage(c, false, "Log in")
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.authPage(c, true, "Create an account")
}

func (h *AuthHandler) authPage(c echo.Context, register bool, title string) error {
	snapshot := loadSettings(c, h.settings)
	l := pageLayout(c, snapshot, "", title,
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: title, URL: ""},
	)
	return render(c, http.StatusOK, "auth.html", l, pages.AuthProps{
		Register:           register,
		FirebaseAPIKey:     h.web.APIKey,
		FirebaseAuthDomain: h.web.AuthDomain,
		FirebaseProjectID:  h.web.ProjectID,
		Error:              loginErrorMessage(c.QueryParam("error")),
	})
}

func loginErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "auth_not_configured":
		return "Sign-in is not available right now."
	default:
		return "Please log in again."
	}
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.issuer == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Firebase not initialized",
		})
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Missing authorization header",
		})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid authorization format",
		})
	}

	if _, err := h.issuer.VerifyIDToken(c.Request().Context(), tokenString); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid token",
		})
	}

	cookieValue, err := h.issuer.SessionCookie(c.Request().Context(), tokenString, sessionLifetime)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    cookieValue,
		MaxAge:   int(sessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// HandleLogout clears the session cookie
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "logged out",
		})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
