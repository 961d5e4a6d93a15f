package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scripture_site_echo/internal/settings"
)

func TestCompileThemeDefaults(t *testing.T) {
	for _, s := range []settings.Settings{nil, {}} {
		theme := CompileTheme(s)
		assert.Equal(t, DefaultThemeVariables(), theme.Variables)
		assert.Equal(t, "#1e3c72", theme.Variables.PrimaryColor)
		assert.Equal(t, "#2a5298", theme.Variables.SecondaryColor)
		assert.Equal(t, "system-ui, -apple-system, sans-serif", theme.Variables.FontFamily)
		assert.Equal(t, "16px", theme.Variables.FontSizeBase)
		assert.Equal(t, "30", theme.Variables.ArticlesPerPage)
		assert.Nil(t, theme.Body.BackgroundColor)
		assert.Nil(t, theme.Body.FontFamily)
		assert.Equal(t, "", theme.Body.Attr())
	}
}

func TestCompileThemePrimaryColor(t *testing.T) {
	theme := CompileTheme(settings.Settings{"primary_color": "#000"})

	css := theme.Variables.CSS()
	assert.Contains(t, css, "--primary-color: #000;")
	assert.Contains(t, css, "--secondary-color: #2a5298;")
	assert.Contains(t, css, "--font-family: system-ui, -apple-system, sans-serif;")
	assert.Contains(t, css, "--font-size-base: 16px;")
	assert.Contains(t, css, "--articles-per-page: 30;")
	assert.Equal(t, "", theme.Body.Attr())
}

func TestCompileThemeEmptyValuesUseDefaults(t *testing.T) {
	theme := CompileTheme(settings.Settings{
		"primary_color": "",
		"font_family":   nil,
		"theme_color":   "",
	})
	assert.Equal(t, DefaultThemeVariables(), theme.Variables)
	assert.Nil(t, theme.Body.BackgroundColor)
	assert.Nil(t, theme.Body.FontFamily)
}

func TestCompileThemeBodyStyle(t *testing.T) {
	tests := []struct {
		name     string
		settings settings.Settings
		want     string
	}{
		{
			name:     "background only",
			settings: settings.Settings{"theme_color": "#fafafa"},
			want:     "background-color: #fafafa",
		},
		{
			name:     "font only",
			settings: settings.Settings{"font_family": "Georgia, serif"},
			want:     "font-family: Georgia, serif",
		},
		{
			name:     "both",
			settings: settings.Settings{"theme_color": "white", "font_family": "Inter"},
			want:     "background-color: white; font-family: Inter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompileTheme(tt.settings).Body.Attr())
		})
	}
}

func TestCompileThemeNumericSettings(t *testing.T) {
	theme := CompileTheme(settings.Settings{"articles_per_page": 12, "base_font_size": "18px"})

	assert.Equal(t, "12", theme.Variables.ArticlesPerPage)
	assert.Equal(t, 12, theme.Variables.PageSize())
	assert.Contains(t, theme.Variables.CSS(), "--font-size-base: 18px;")
}

func TestThemeCSSStripsBreakout(t *testing.T) {
	theme := CompileTheme(settings.Settings{
		"primary_color": "red;} body{display:none",
		"theme_color":   "</style><script>",
	})

	css := theme.Variables.CSS()
	assert.Contains(t, css, "--primary-color: red bodydisplay:none;")
	assert.NotContains(t, theme.Body.Attr(), "<")
}

func TestThemeCSSIsStable(t *testing.T) {
	s := settings.Settings{"secondary_color": "#123456"}
	first := CompileTheme(s).Variables.CSS()
	require.Equal(t, first, CompileTheme(s).Variables.CSS())
	assert.Equal(t, ":root {\n"+
		"  --primary-color: #1e3c72;\n"+
		"  --secondary-color: #123456;\n"+
		"  --font-family: system-ui, -apple-system, sans-serif;\n"+
		"  --font-size-base: 16px;\n"+
		"  --articles-per-page: 30;\n"+
		"}\n", first)
}

func TestMergeThemeVariables(t *testing.T) {
	base := ThemeVariables{PrimaryColor: "a", SecondaryColor: "b", FontFamily: "c", FontSizeBase: "d", ArticlesPerPage: "e"}
	got := MergeThemeVariables(base, settings.Settings{"font_family": "serif"})

	assert.Equal(t, "serif", got.FontFamily)
	assert.Equal(t, "a", got.PrimaryColor)
	assert.Equal(t, "e", got.ArticlesPerPage)
	// base is a value, not modified
	assert.Equal(t, "c", base.FontFamily)
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"30", 30},
		{" 8 ", 8},
		{"0", 30},
		{"-4", 30},
		{"ten", 30},
		{"", 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThemeVariables{ArticlesPerPage: tt.value}.PageSize(), tt.value)
	}
}

func TestCompileMetadata(t *testing.T) {
	meta := CompileMetadata(nil, "", "")
	assert.Equal(t, DefaultSiteTitle, meta.SiteTitle)
	assert.Equal(t, DefaultSiteDescription, meta.Description)
	assert.Equal(t, DefaultSiteURL, meta.URL)
	assert.Equal(t, DefaultOGImage, meta.OGImage)
	assert.Equal(t, DefaultTwitterHandle, meta.TwitterHandle)
	assert.Equal(t, DefaultSiteTitle, meta.Title())

	meta = CompileMetadata(settings.Settings{
		"site_title":       "Grace Fellowship",
		"site_description": "Weekly studies",
	}, "Articles", "")
	assert.Equal(t, "Articles | Grace Fellowship", meta.Title())
	assert.Equal(t, "Weekly studies", meta.Description)

	meta = CompileMetadata(settings.Settings{"site_title": "Grace"}, "Grace", "One psalm a day")
	assert.Equal(t, "Grace", meta.Title())
	assert.Equal(t, "One psalm a day", meta.Description)
}
