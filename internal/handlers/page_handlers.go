package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/content"
	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/middleware"
	"scripture_site_echo/internal/trivia"
	"scripture_site_echo/web/templates/pages"
)

const homeListSize = 3

// PageHandler serves the public content pages
type PageHandler struct {
	settings middleware.SettingsLoader
	library  *content.Library
	bank     *trivia.Bank
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(loader middleware.SettingsLoader, library *content.Library, bank *trivia.Bank) *PageHandler {
	return &PageHandler{settings: loader, library: library, bank: bank}
}

// Home renders the landing page
func (h *PageHandler) Home(c echo.Context) error {
	snapshot := loadSettings(c, h.settings)
	return render(c, http.StatusOK, "home.html", pageLayout(c, snapshot, "home", ""), pages.HomeProps{
		LatestArticles: pages.ItemList{Heading: "Latest articles", Items: h.library.List(content.KindArticle, homeListSize)},
		Resources:      pages.ItemList{Heading: "Study resources", Items: h.library.List(content.KindResource, homeListSize)},
	})
}

// Articles renders the article listing
func (h *PageHandler) Articles(c echo.Context) error {
	return h.listing(c, content.KindArticle, "Articles")
}

// Article renders a single article
func (h *PageHandler) Article(c echo.Context) error {
	return h.detail(c, content.KindArticle, "Articles")
}

// Resources renders the resource listing
func (h *PageHandler) Resources(c echo.Context) error {
	return h.listing(c, content.KindResource, "Resources")
}

// Resource renders a single resource
func (h *PageHandler) Resource(c echo.Context) error {
	return h.detail(c, content.KindResource, "Resources")
}

func (h *PageHandler) listing(c echo.Context, kind content.Kind, title string) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid page number")
		}
		page = n
	}

	snapshot := loadSettings(c, h.settings)
	size := layout.CompileTheme(snapshot).Variables.PageSize()
	items, total := h.library.Page(kind, page, size)
	if len(items) == 0 && page > 1 {
		return echo.NewHTTPError(http.StatusNotFound, "That page of "+strings.ToLower(title)+" doesn't exist.")
	}

	l := pageLayout(c, snapshot, string(kind), title,
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: title, URL: ""},
	)
	return render(c, http.StatusOK, "content_list.html", l, pages.ListProps{
		List:       pages.ItemList{Heading: title, Items: items},
		Pagination: pages.NewPagination("/"+string(kind), page, size, total),
	})
}

func (h *PageHandler) detail(c echo.Context, kind content.Kind, section string) error {
	item, err := h.library.Get(kind, c.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	snapshot := loadSettings(c, h.settings)
	l := pageLayout(c, snapshot, string(kind), item.Title,
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: section, URL: "/" + string(kind)},
		pages.Breadcrumb{Title: item.Title, URL: ""},
	)
	l.Document.Description = item.Summary
	return render(c, http.StatusOK, "content_detail.html", l, pages.NewDetailProps(item))
}

// Trivia renders the trivia game page
func (h *PageHandler) Trivia(c echo.Context) error {
	snapshot := loadSettings(c, h.settings)
	l := pageLayout(c, snapshot, "trivia", "Bible Trivia",
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: "Trivia", URL: ""},
	)
	return render(c, http.StatusOK, "trivia.html", l, pages.TriviaProps{
		Categories:    h.bank.Categories(),
		QuestionCount: h.bank.Len(),
	})
}

// About renders the about page
func (h *PageHandler) About(c echo.Context) error {
	snapshot := loadSettings(c, h.settings)
	l := pageLayout(c, snapshot, "about", "About",
		pages.Breadcrumb{Title: "Home", URL: "/"},
		pages.Breadcrumb{Title: "About", URL: ""},
	)
	return render(c, http.StatusOK, "about.html", l, nil)
}
