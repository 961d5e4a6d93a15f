package pages

import (
	"html/template"
	"net/url"
	"strconv"

	"scripture_site_echo/internal/content"
	"scripture_site_echo/internal/models"
	"scripture_site_echo/web/templates/layouts"
)

// Breadcrumb represents a navigation trail entry. An empty URL marks the
// current page.
type Breadcrumb struct {
	Title string
	URL   string
}

// NavItem is one entry of the site navigation
type NavItem struct {
	Key   string
	Title string
	URL   string
}

// NavItems are the top-level sections shown in the navigation bar
var NavItems = []NavItem{
	{Key: "home", Title: "Home", URL: "/"},
	{Key: "articles", Title: "Articles", URL: "/articles"},
	{Key: "resources", Title: "Resources", URL: "/resources"},
	{Key: "trivia", Title: "Trivia", URL: "/trivia"},
	{Key: "about", Title: "About", URL: "/about"},
}

// NavLink is a NavItem as rendered for one page
type NavLink struct {
	NavItem
	Active bool
}

// Layout is the part of every page that feeds the shared layout
type Layout struct {
	Document    layouts.DocumentProps
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	UserEmail   string
}

// View is the data every page template is executed with. Doc is resolved
// once; page templates read the page-specific part from Page.
type View struct {
	Doc         layouts.DocumentData
	Nav         []NavLink
	Breadcrumbs []Breadcrumb
	UserEmail   string
	Page        any
}

// NewView resolves the document for l and pairs it with the page data.
func NewView(l Layout, page any) *View {
	nav := make([]NavLink, len(NavItems))
	for i, item := range NavItems {
		nav[i] = NavLink{NavItem: item, Active: item.Key == l.ActiveNav}
	}
	return &View{
		Doc:         layouts.Resolve(l.Document),
		Nav:         nav,
		Breadcrumbs: l.Breadcrumbs,
		UserEmail:   l.UserEmail,
		Page:        page,
	}
}

// ItemList is a headed list of articles or resources
type ItemList struct {
	Heading string
	Items   []content.Item
}

// Pagination links a listing page to its neighbours
type Pagination struct {
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

// NewPagination builds the links for page of a listing at basePath with
// total items shown size at a time.
func NewPagination(basePath string, page, size, total int) Pagination {
	p := Pagination{Page: page, TotalPages: 1}
	if size > 0 && total > size {
		p.TotalPages = (total + size - 1) / size
	}
	if page > 1 {
		p.PrevURL = pageURL(basePath, page-1)
	}
	if page < p.TotalPages {
		p.NextURL = pageURL(basePath, page+1)
	}
	return p
}

func pageURL(basePath string, page int) string {
	if page == 1 {
		return basePath
	}
	return basePath + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}

// HomeProps holds the data for the home page
type HomeProps struct {
	LatestArticles ItemList
	Resources      ItemList
}

// ListProps holds the data for an article or resource listing
type ListProps struct {
	List       ItemList
	Pagination Pagination
}

// DetailProps holds the data for a single article or resource
type DetailProps struct {
	Item content.Item
	Body template.HTML
}

// NewDetailProps wraps item. Item HTML comes from the markdown renderer,
// which drops raw HTML from the source.
func NewDetailProps(item content.Item) DetailProps {
	return DetailProps{Item: item, Body: template.HTML(item.HTML)}
}

// TriviaProps holds the data for the trivia page; questions are fetched by
// the page script from /api/trivia/questions.
type TriviaProps struct {
	Categories    []string
	QuestionCount int
}

// AuthProps holds the data for the login and register pages. The Firebase
// client config is handed to the page script through data attributes.
type AuthProps struct {
	Register           bool
	FirebaseAPIKey     string
	FirebaseAuthDomain string
	FirebaseProjectID  string
	Error              string
}

// AdminSettingsProps holds the data for the settings admin page
type AdminSettingsProps struct {
	Settings []models.SiteSetting
	Notice   string
}

// ErrorPageProps holds the data for error pages
type ErrorPageProps struct {
	ErrorTitle   string
	ErrorMessage string
	BackLink     string
	BackText     string
}
