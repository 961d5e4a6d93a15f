package layouts

import (
	"html/template"

	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/settings"
)

// DocumentProps are the inputs of one page render.
type DocumentProps struct {
	// Settings is the site configuration snapshot for this render. nil
	// means all defaults.
	Settings settings.Settings

	// Request is nil when rendering outside an HTTP request.
	Request *layout.RequestContext

	Title       string
	Description string
}

// DocumentData is everything resolved for a render before markup is written.
// base.html reads nothing else.
type DocumentData struct {
	Meta   layout.Metadata
	Assets layout.AssetSelection
	Theme  layout.Theme
}

// Resolve computes the document data for props. It has no side effects.
func Resolve(props DocumentProps) DocumentData {
	return DocumentData{
		Meta:   layout.CompileMetadata(props.Settings, props.Title, props.Description),
		Assets: layout.Resolve(layout.Classify(props.Request)),
		Theme:  layout.CompileTheme(props.Settings),
	}
}

// ThemeCSS is the :root block for the theme <style> element. Values are
// stripped of the characters that could end the declaration or the element.
func (d DocumentData) ThemeCSS() template.CSS {
	return template.CSS(d.Theme.Variables.CSS())
}

// BodyStyle is the inline style of <body>, empty when no body setting is set.
func (d DocumentData) BodyStyle() template.CSS {
	return template.CSS(d.Theme.Body.Attr())
}

// NavigationCSS is linked after the page stylesheets.
func (d DocumentData) NavigationCSS() string {
	return layout.NavigationCSS
}

// NavigationJS is loaded after the page scripts.
func (d DocumentData) NavigationJS() string {
	return layout.NavigationJS
}
