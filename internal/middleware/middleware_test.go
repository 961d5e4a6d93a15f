package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scripture_site_echo/internal/settings"
)

type fakeVerifier struct {
	claims map[string]interface{}
	err    error
}

func (f *fakeVerifier) VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: "uid-" + sessionCookie, Claims: f.claims}, nil
}

type fakeLoader struct {
	snapshot settings.Settings
	err      error
}

func (f fakeLoader) Load(ctx context.Context) (settings.Settings, error) {
	return f.snapshot, f.err
}

func newAdminServer(verifier SessionVerifier) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(fakeLoader{})
	admin := e.Group("/admin")
	admin.Use(RequireAuth(verifier))
	admin.Use(RequireAdmin())
	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ContextUserUID).(string)+" "+c.Get(ContextUserEmail).(string))
	}
	admin.GET("", ok)
	admin.GET("/api/settings", ok)
	return e
}

func TestRequireAuth(t *testing.T) {
	adminClaims := map[string]interface{}{"email": "admin@example.com", "admin": true}

	tests := []struct {
		name         string
		verifier     SessionVerifier
		path         string
		cookie       string
		wantCode     int
		wantLocation string
	}{
		{
			name:         "not configured",
			verifier:     nil,
			path:         "/admin",
			cookie:       "abc",
			wantCode:     http.StatusTemporaryRedirect,
			wantLocation: "/login?error=auth_not_configured",
		},
		{
			name:         "no cookie redirects browsers",
			verifier:     &fakeVerifier{claims: adminClaims},
			path:         "/admin",
			wantCode:     http.StatusTemporaryRedirect,
			wantLocation: "/login",
		},
		{
			name:     "no cookie on the API",
			verifier: &fakeVerifier{claims: adminClaims},
			path:     "/admin/api/settings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid session",
			verifier:     &fakeVerifier{err: errors.New("revoked")},
			path:         "/admin",
			cookie:       "abc",
			wantCode:     http.StatusTemporaryRedirect,
			wantLocation: "/login",
		},
		{
			name:     "not an admin",
			verifier: &fakeVerifier{claims: map[string]interface{}{"email": "reader@example.com"}},
			path:     "/admin",
			cookie:   "abc",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin",
			verifier: &fakeVerifier{claims: adminClaims},
			path:     "/admin",
			cookie:   "abc",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAdminServer(tt.verifier)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			}
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "uid-abc admin@example.com", rec.Body.String())
			}
		})
	}
}

func TestRequireAuthClearsInvalidCookie(t *testing.T) {
	e := newAdminServer(&fakeVerifier{err: errors.New("expired")})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantTitle   string
		wantMessage string
	}{
		{
			name:        "plain error",
			err:         errors.New("db exploded"),
			wantCode:    http.StatusInternalServerError,
			wantTitle:   "Internal Server Error",
			wantMessage: "Something went wrong. Please try again later.",
		},
		{
			name:        "default not found",
			err:         echo.ErrNotFound,
			wantCode:    http.StatusNotFound,
			wantTitle:   "Page Not Found",
			wantMessage: "The page you're looking for doesn't exist.",
		},
		{
			name:        "custom bad request",
			err:         echo.NewHTTPError(http.StatusBadRequest, "Invalid page number"),
			wantCode:    http.StatusBadRequest,
			wantTitle:   "Bad Request",
			wantMessage: "Invalid page number",
		},
		{
			name:        "forbidden",
			err:         echo.NewHTTPError(http.StatusForbidden, ""),
			wantCode:    http.StatusForbidden,
			wantTitle:   "Access Denied",
			wantMessage: "You don't have permission to access this resource.",
		},
		{
			name:        "other status",
			err:         echo.NewHTTPError(http.StatusServiceUnavailable, "Settings storage is not configured"),
			wantCode:    http.StatusServiceUnavailable,
			wantTitle:   "Service Unavailable",
			wantMessage: "Settings storage is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, title, message := describeError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}
