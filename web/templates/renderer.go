package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/web/templates/pages"
)

//go:embed layouts/*.html partials/*.html pages/*.html
var files embed.FS

// ErrTemplateNotFound is returned for a page name with no template.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRenderer is an html/template renderer for Echo. Each page is a
// clone of the base layout and partials, so every page can define its own
// "content" block.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses the embedded layouts, partials and pages.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	base, err := template.New("site").ParseFS(files, "layouts/*.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}

	names, err := fs.Glob(files, "pages/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(files, name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		templates[path.Base(name)] = page
	}
	return &TemplateRenderer{templates: templates}, nil
}

// Render implements echo.Renderer. The signed-in user is taken from the
// context when the view doesn't carry one.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if view, ok := data.(*pages.View); ok && c != nil && view.UserEmail == "" {
		view.UserEmail, _ = c.Get(middleware.ContextUserEmail).(string)
	}
	return t.Execute(w, name, data)
}

// Execute renders the page name with data. Nothing is written to w unless
// the whole document rendered.
func (t *TemplateRenderer) Execute(w io.Writer, name string, data interface{}) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
