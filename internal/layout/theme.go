package layout

import (
	"strconv"
	"strings"

	"scripture_site_echo/internal/settings"
)

// Theme defaults used when a setting is missing or empty.
const (
	DefaultPrimaryColor    = "#1e3c72"
	DefaultSecondaryColor  = "#2a5298"
	DefaultFontFamily      = "system-ui, -apple-system, sans-serif"
	DefaultFontSizeBase    = "16px"
	DefaultArticlesPerPage = "30"
)

// ThemeVariables are the CSS custom properties injected into every page.
type ThemeVariables struct {
	PrimaryColor    string
	SecondaryColor  string
	FontFamily      string
	FontSizeBase    string
	ArticlesPerPage string
}

// BodyStyle is the inline style of the <body> element. A nil field is left
// out so page stylesheets win unless the site is explicitly configured.
type BodyStyle struct {
	BackgroundColor *string
	FontFamily      *string
}

// Theme is everything the theme compiler derives from settings.
type Theme struct {
	Variables ThemeVariables
	Body      BodyStyle
}

// DefaultThemeVariables returns the variables used for an empty settings
// snapshot.
func DefaultThemeVariables() ThemeVariables {
	return ThemeVariables{
		PrimaryColor:    DefaultPrimaryColor,
		SecondaryColor:  DefaultSecondaryColor,
		FontFamily:      DefaultFontFamily,
		FontSizeBase:    DefaultFontSizeBase,
		ArticlesPerPage: DefaultArticlesPerPage,
	}
}

// MergeThemeVariables lays s over base. Missing and empty settings keep the
// base value.
func MergeThemeVariables(base ThemeVariables, s settings.Settings) ThemeVariables {
	return ThemeVariables{
		PrimaryColor:    s.String(settings.KeyPrimaryColor, base.PrimaryColor),
		SecondaryColor:  s.String(settings.KeySecondaryColor, base.SecondaryColor),
		FontFamily:      s.String(settings.KeyFontFamily, base.FontFamily),
		FontSizeBase:    s.String(settings.KeyBaseFontSize, base.FontSizeBase),
		ArticlesPerPage: s.String(settings.KeyArticlesPerPage, base.ArticlesPerPage),
	}
}

// CompileTheme derives the theme for one render. It's recomputed for every
// page since settings can change between requests.
func CompileTheme(s settings.Settings) Theme {
	theme := Theme{Variables: MergeThemeVariables(DefaultThemeVariables(), s)}
	if val, ok := s.Lookup(settings.KeyThemeColor); ok {
		theme.Body.BackgroundColor = &val
	}
	if val, ok := s.Lookup(settings.KeyFontFamily); ok {
		theme.Body.FontFamily = &val
	}
	return theme
}

// CSS renders the variables as a :root rule, without <style> tags.
func (v ThemeVariables) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	writeDeclaration(&b, "--primary-color", v.PrimaryColor)
	writeDeclaration(&b, "--secondary-color", v.SecondaryColor)
	writeDeclaration(&b, "--font-family", v.FontFamily)
	writeDeclaration(&b, "--font-size-base", v.FontSizeBase)
	writeDeclaration(&b, "--articles-per-page", v.ArticlesPerPage)
	b.WriteString("}\n")
	return b.String()
}

// PageSize returns ArticlesPerPage as a positive integer, falling back to the
// default when it isn't one.
func (v ThemeVariables) PageSize() int {
	n, err := strconv.Atoi(strings.TrimSpace(v.ArticlesPerPage))
	if err != nil || n < 1 {
		n, _ = strconv.Atoi(DefaultArticlesPerPage)
	}
	return n
}

// Attr renders the body style attribute value, "" when nothing is set.
func (s BodyStyle) Attr() string {
	var parts []string
	if s.BackgroundColor != nil {
		parts = append(parts, "background-color: "+cssValue(*s.BackgroundColor))
	}
	if s.FontFamily != nil {
		parts = append(parts, "font-family: "+cssValue(*s.FontFamily))
	}
	return strings.Join(parts, "; ")
}

func writeDeclaration(b *strings.Builder, name, value string) {
	b.WriteString("  ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(cssValue(value))
	b.WriteString(";\n")
}

// cssValue drops characters that would end the declaration or the enclosing
// <style> element.
var cssValue = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "").Replace
