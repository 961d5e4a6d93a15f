package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/web/templates/layouts"
	"scripture_site_echo/web/templates/pages"
)

// ErrorTemplate is the page template used for HTML errors
const ErrorTemplate = "error.html"

// SettingsLoader supplies the settings snapshot for a render
type SettingsLoader interface {
	Load(ctx context.Context) (settings.Settings, error)
}

// NewErrorHandler creates the Echo error handler. Errors are rendered as a
// full site page for the failing path, or as JSON for API requests.
func NewErrorHandler(loader SettingsLoader) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			c.Logger().Error(err)
			return
		}

		code, errorTitle, errorMessage := describeError(err)
		c.Logger().Error(err)

		path := c.Request().URL.Path
		if wantsJSON(c.Request()) || strings.HasPrefix(path, "/api/") {
			if jsonErr := c.JSON(code, map[string]string{"error": errorMessage}); jsonErr != nil {
				c.Logger().Error(jsonErr)
			}
			return
		}

		if c.Request().Method == http.MethodHead {
			c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
			if noContentErr := c.NoContent(code); noContentErr != nil {
				c.Logger().Error(noContentErr)
			}
			return
		}

		// a broken settings source still gets a page, with defaults
		var snapshot settings.Settings
		if loader != nil {
			loaded, loadErr := loader.Load(c.Request().Context())
			if loadErr != nil {
				c.Logger().Error(fmt.Errorf("failed to load settings for error page: %w", loadErr))
			} else {
				snapshot = loaded
			}
		}

		view := pages.NewView(pages.Layout{
			Document: layouts.DocumentProps{
				Settings: snapshot,
				Request:  &layout.RequestContext{Path: path},
				Title:    errorTitle,
			},
			Breadcrumbs: []pages.Breadcrumb{
				{Title: "Home", URL: "/"},
				{Title: "Error", URL: ""},
			},
		}, pages.ErrorPageProps{
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
		})

		// c.Render buffers the page, so a failed render leaves the response
		// uncommitted for the plain-text fallback
		if renderErr := c.Render(code, ErrorTemplate, view); renderErr != nil {
			c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
			if stringErr := c.String(code, errorMessage); stringErr != nil {
				c.Logger().Error(stringErr)
			}
		}
	}
}

// describeError maps an error to a status code, a title and a user-facing
// message.
func describeError(err error) (int, string, string) {
	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" || errorMessage == http.StatusText(http.StatusNotFound) {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusForbidden:
			errorTitle = "Access Denied"
			if errorMessage == "" {
				errorMessage = "You don't have permission to access this resource."
			}
		case http.StatusUnauthorized:
			errorTitle = "Unauthorized"
			if errorMessage == "" {
				errorMessage = "Please log in to continue."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		case http.StatusMethodNotAllowed:
			errorTitle = "Method Not Allowed"
			if errorMessage == "" {
				errorMessage = "That action isn't supported here."
			}
		default:
			if code != http.StatusInternalServerError && http.StatusText(code) != "" {
				errorTitle = http.StatusText(code)
			}
		}
	}
	if errorMessage == "" {
		errorMessage = "Something went wrong. Please try again later."
	}
	return code, errorTitle, errorMessage
}
