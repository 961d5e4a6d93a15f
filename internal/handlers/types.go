package handlers

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/internal/models"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/web/templates/layouts"
	"scripture_site_echo/web/templates/pages"
)

// SettingsStore is the settings persistence the handlers need
type SettingsStore interface {
	Load(ctx context.Context) (settings.Settings, error)
	List(ctx context.Context) ([]models.SiteSetting, error)
	Set(ctx context.Context, key, value, updatedBy string) error
	Delete(ctx context.Context, key string) error
}

// requestContext exposes the request path to the layout resolver
func requestContext(c echo.Context) *layout.RequestContext {
	return &layout.RequestContext{Path: c.Request().URL.Path}
}

// loadSettings returns a fresh snapshot. A failing source degrades to the
// defaults instead of failing the page.
func loadSettings(c echo.Context, loader middleware.SettingsLoader) settings.Settings {
	snapshot, err := loader.Load(c.Request().Context())
	if err != nil {
		log.Printf("Failed to load settings for %s, using defaults: %v", c.Request().URL.Path, err)
		return nil
	}
	return snapshot
}

// pageLayout builds the shared layout props for the current request
func pageLayout(c echo.Context, snapshot settings.Settings, activeNav, title string, crumbs ...pages.Breadcrumb) pages.Layout {
	return pages.Layout{
		Document: layouts.DocumentProps{
			Settings: snapshot,
			Request:  requestContext(c),
			Title:    title,
		},
		ActiveNav:   activeNav,
		Breadcrumbs: crumbs,
		UserEmail:   getStringFromContext(c, middleware.ContextUserEmail),
	}
}

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

// render executes a page template inside the site layout. echo buffers the
// output, so a failing template reaches the error handler before anything
// is written.
func render(c echo.Context, status int, name string, l pages.Layout, page any) error {
	return c.Render(status, name, pages.NewView(l, page))
}
