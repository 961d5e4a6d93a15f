package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/web/templates/pages"
)

// SettingsHandler lets administrators manage site settings
type SettingsHandler struct {
	store SettingsStore
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type settingInput struct {
	Value string `json:"value" form:"value"`
}

// SettingsPage renders the settings admin page
func (h *SettingsHandler) SettingsPage(c echo.Context) error {
	rows, err := h.store.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch settings")
	}

	snapshot := loadSettings(c, h.store)
	l := pageLayout(c, snapshot, "", "Site settings",
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: "Admin", URL: ""},
	)
	return render(c, http.StatusOK, "admin_settings.html", l, pages.AdminSettingsProps{
		Settings: rows,
		Notice:   c.QueryParam("notice"),
	})
}

// SaveSettingForm handles the settings form submission
func (h *SettingsHandler) SaveSettingForm(c echo.Context) error {
	key := c.FormValue("key")
	if err := h.store.Set(c.Request().Context(), key, c.FormValue("value"), h.actor(c)); err != nil {
		return settingsError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin?notice="+url.QueryEscape("Saved "+key))
}

// DeleteSettingForm handles the remove button on the settings page
func (h *SettingsHandler) DeleteSettingForm(c echo.Context) error {
	key := c.Param("key")
	if err := h.store.Delete(c.Request().Context(), key); err != nil {
		return settingsError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin?notice="+url.QueryEscape("Removed "+key))
}

// ListSettings returns every stored setting
func (h *SettingsHandler) ListSettings(c echo.Context) error {
	rows, err := h.store.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch settings")
	}
	return c.JSON(http.StatusOK, rows)
}

// PutSetting stores the value for the key in the path
func (h *SettingsHandler) PutSetting(c echo.Context) error {
	var input settingInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	key := c.Param("key")
	if err := h.store.Set(c.Request().Context(), key, input.Value, h.actor(c)); err != nil {
		return settingsError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"key":   key,
		"value": input.Value,
	})
}

// DeleteSetting removes the key in the path
func (h *SettingsHandler) DeleteSetting(c echo.Context) error {
	if err := h.store.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return settingsError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PreviewAssets shows what the resolver picks for ?path= with the current
// settings. Without a path it shows the no-request fallback.
func (h *SettingsHandler) PreviewAssets(c echo.Context) error {
	var req *layout.RequestContext
	if path, ok := c.QueryParams()["path"]; ok && len(path) > 0 {
		req = &layout.RequestContext{Path: path[0]}
	}

	snapshot := loadSettings(c, h.store)
	classification := layout.Classify(req)
	theme := layout.CompileTheme(snapshot)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"base_path":   classification.BasePath,
		"segments":    classification.Segments,
		"has_context": classification.HasContext,
		"assets":      layout.Resolve(classification),
		"theme_css":   theme.Variables.CSS(),
		"body_style":  theme.Body.Attr(),
	})
}

func (h *SettingsHandler) actor(c echo.Context) string {
	if email := getStringFromContext(c, middleware.ContextUserEmail); email != "" {
		return email
	}
	return getStringFromContext(c, middleware.ContextUserUID)
}

func settingsError(err error) error {
	switch {
	case errors.Is(err, settings.ErrInvalidKey):
		return echo.NewHTTPError(http.StatusBadRequest, "Setting keys are lower_snake_case, up to 64 characters")
	case errors.Is(err, settings.ErrNoDatabase):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Settings storage is not configured")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update settings").SetInternal(err)
	}
}
