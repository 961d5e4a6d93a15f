package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/web/templates"
	"scripture_site_echo/web/templates/layouts"
	"scripture_site_echo/web/templates/pages"
)

type staticLoader struct {
	snapshot settings.Settings
	err      error
}

func (l staticLoader) Load(ctx context.Context) (settings.Settings, error) {
	return l.snapshot, l.err
}

func newServer(t *testing.T, loader middleware.SettingsLoader) *echo.Echo {
	t.Helper()
	renderer, err := templates.NewTemplateRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.NewErrorHandler(loader)
	return e
}

func TestErrorHandlerRendersPage(t *testing.T) {
	e := newServer(t, staticLoader{snapshot: settings.Settings{"site_title": "Grace"}})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Page Not Found | Grace</title>")
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/common.css">`)
	assert.Contains(t, body, "The page you&#39;re looking for doesn&#39;t exist.")
}

func TestErrorHandlerFallsBackToDefaults(t *testing.T) {
	e := newServer(t, staticLoader{err: errors.New("no database")})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Page Not Found | Scripture Hub</title>")
}

func TestErrorHandlerJSON(t *testing.T) {
	e := newServer(t, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"The page you're looking for doesn't exist."}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/elsewhere", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
}

func TestErrorHandlerHead(t *testing.T) {
	e := newServer(t, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestFailedPageRenderBecomesErrorPage(t *testing.T) {
	e := newServer(t, nil)
	e.GET("/", func(c echo.Context) error {
		l := pages.Layout{Document: layouts.DocumentProps{Request: &layout.RequestContext{Path: "/"}}}
		// home.html fails inside <main> on the wrong page data
		return c.Render(http.StatusOK, "home.html", pages.NewView(l, 42))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "<!doctype html>"))
	assert.Equal(t, 1, strings.Count(body, `<div id="app"`))
	assert.Contains(t, body, "<title>Internal Server Error | Scripture Hub</title>")
	assert.NotContains(t, body, `<section class="hero">`)
	assert.True(t, strings.HasSuffix(body, "</html>\n"), body)
}

func TestErrorHandlerPlainTextWithoutTemplates(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The page you're looking for doesn't exist.", rec.Body.String())
}
