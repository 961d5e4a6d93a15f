package layouts

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/settings"
)

func TestResolve(t *testing.T) {
	props := DocumentProps{
		Settings: settings.Settings{"primary_color": "#000"},
		Request:  &layout.RequestContext{Path: "/articles/1"},
	}
	first := Resolve(props)
	second := Resolve(props)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{layout.MainCSS}, first.Assets.CSSFiles)
	assert.Equal(t, []string{"/static/articles.js"}, first.Assets.JSFiles)
	assert.Equal(t, "#000", first.Theme.Variables.PrimaryColor)
	assert.Equal(t, "Scripture Hub", first.Meta.Title())
}

func TestResolveWithoutRequest(t *testing.T) {
	data := Resolve(DocumentProps{Title: "Preview"})

	assert.Equal(t, []string{layout.MainCSS}, data.Assets.CSSFiles)
	assert.Equal(t, []string{layout.HomeJS}, data.Assets.JSFiles)
	assert.Equal(t, "Preview | Scripture Hub", data.Meta.Title())
	assert.Equal(t, layout.DefaultThemeVariables(), data.Theme.Variables)
}

func TestDocumentDataStyles(t *testing.T) {
	data := Resolve(DocumentProps{})
	assert.Equal(t, template.CSS(""), data.BodyStyle())
	assert.Contains(t, string(data.ThemeCSS()), "--primary-color: #1e3c72;")

	data = Resolve(DocumentProps{Settings: settings.Settings{"theme_color": "#fff", "font_family": "Georgia"}})
	assert.Equal(t, template.CSS("background-color: #fff; font-family: Georgia"), data.BodyStyle())
	assert.Equal(t, layout.NavigationCSS, data.NavigationCSS())
	assert.Equal(t, layout.NavigationJS, data.NavigationJS())
}
