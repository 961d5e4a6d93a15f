package layout

import "scripture_site_echo/internal/settings"

// Metadata defaults used when a setting is missing or empty.
const (
	DefaultSiteTitle       = "Scripture Hub"
	DefaultSiteDescription = "Articles, study resources and Bible trivia for every level."
	DefaultSiteURL         = "http://localhost:8080"
	DefaultOGImage         = "/static/images/og-default.png"
	DefaultTwitterHandle   = "@scripturehub"
)

// Metadata is the document-level information rendered into <head>.
type Metadata struct {
	SiteTitle     string
	PageTitle     string
	Description   string
	URL           string
	OGImage       string
	TwitterHandle string
}

// CompileMetadata reads site metadata from s. pageTitle and pageDescription
// are optional per-page overrides.
func CompileMetadata(s settings.Settings, pageTitle, pageDescription string) Metadata {
	meta := Metadata{
		SiteTitle:     s.String(settings.KeySiteTitle, DefaultSiteTitle),
		PageTitle:     pageTitle,
		Description:   s.String(settings.KeySiteDescription, DefaultSiteDescription),
		URL:           s.String(settings.KeySiteURL, DefaultSiteURL),
		OGImage:       s.String(settings.KeyOGImage, DefaultOGImage),
		TwitterHandle: s.String(settings.KeyTwitterHandle, DefaultTwitterHandle),
	}
	if pageDescription != "" {
		meta.Description = pageDescription
	}
	return meta
}

// Title is the text of the <title> element.
func (m Metadata) Title() string {
	if m.PageTitle == "" || m.PageTitle == m.SiteTitle {
		return m.SiteTitle
	}
	return m.PageTitle + " | " + m.SiteTitle
}
