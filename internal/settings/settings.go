package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Known setting keys
const (
	KeyThemeColor      = "theme_color"
	KeyPrimaryColor    = "primary_color"
	KeySecondaryColor  = "secondary_color"
	KeyFontFamily      = "font_family"
	KeyBaseFontSize    = "base_font_size"
	KeyArticlesPerPage = "articles_per_page"
	KeySiteTitle       = "site_title"
	KeySiteDescription = "site_description"
	KeySiteURL         = "site_url"
	KeyOGImage         = "og_image"
	KeyTwitterHandle   = "twitter_handle"
)

// Settings is a snapshot of site configuration. Every key is optional; readers
// always supply their own fallback. A nil Settings behaves like an empty one.
type Settings map[string]any

// Lookup returns the value for key formatted as a string. Missing keys, nil
// values and empty strings all report ok=false.
func (s Settings) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	raw, ok := s[key]
	if !ok || raw == nil {
		return "", false
	}
	var val string
	switch v := raw.(type) {
	case string:
		val = v
	case fmt.Stringer:
		val = v.String()
	default:
		val = fmt.Sprint(v)
	}
	if val == "" {
		return "", false
	}
	return val, true
}

// String returns the value for key, or fallback when it's absent or empty.
func (s Settings) String(key, fallback string) string {
	if val, ok := s.Lookup(key); ok {
		return val
	}
	return fallback
}

// Int returns the value for key parsed as an integer, or fallback when it's
// absent or not a number.
func (s Settings) Int(key string, fallback int) int {
	val, ok := s.Lookup(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return n
}

// FromStrings builds a Settings snapshot from stored string pairs.
func FromStrings(values map[string]string) Settings {
	s := make(Settings, len(values))
	for k, v := range values {
		s[k] = v
	}
	return s
}
