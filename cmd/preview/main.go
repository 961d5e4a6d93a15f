// Command preview renders a page outside any HTTP request, the way a static
// export or an email template would, and writes the HTML to stdout or a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"scripture_site_echo/internal/config"
	"scripture_site_echo/internal/content"
	"scripture_site_echo/internal/layout"
	"scripture_site_echo/internal/services"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/web/templates"
	"scripture_site_echo/web/templates/layouts"
	"scripture_site_echo/web/templates/pages"
)

func main() {
	path := flag.String("path", "", "Request path to render for; empty renders with no request context")
	out := flag.String("out", "", "Output file (default: stdout)")
	title := flag.String("title", "", "Page title")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL, false)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	}
	snapshot, err := settings.NewStore(db, nil, cfg.SettingsCacheTTL).Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	library, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	var req *layout.RequestContext
	if *path != "" {
		req = &layout.RequestContext{Path: *path}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	renderer, err := templates.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	view := pages.NewView(pages.Layout{
		Document: layouts.DocumentProps{
			Settings: snapshot,
			Request:  req,
			Title:    *title,
		},
		ActiveNav: "home",
	}, pages.HomeProps{
		LatestArticles: pages.ItemList{Heading: "Latest articles", Items: library.List(content.KindArticle, 3)},
		Resources:      pages.ItemList{Heading: "Study resources", Items: library.List(content.KindResource, 3)},
	})
	if err := renderer.Execute(w, "home.html", view); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	}
}
