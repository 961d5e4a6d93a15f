package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Kind is a section of the site backed by markdown documents.
type Kind string

const (
	KindArticle  Kind = "articles"
	KindResource Kind = "resources"
)

var (
	// ErrNotFound is returned when no item exists for a kind and slug.
	ErrNotFound = errors.New("content not found")

	//go:embed data
	embedded embed.FS
)

// Item is one rendered markdown document.
type Item struct {
	Kind      Kind
	Slug      string
	Title     string
	Summary   string
	Published time.Time
	HTML      string
}

// URL is the path the item is served from.
func (i Item) URL() string {
	return "/" + string(i.Kind) + "/" + i.Slug
}

type frontMatter struct {
	Title     string    `yaml:"title"`
	Summary   string    `yaml:"summary"`
	Published time.Time `yaml:"published"`
}

// Library holds every item, rendered once at load time.
type Library struct {
	items map[Kind][]Item
}

// Load renders the documents embedded in the binary.
func Load() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS renders <kind>/<slug>.md documents from fsys.
func LoadFS(fsys fs.FS) (*Library, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	lib := &Library{items: map[Kind][]Item{}}

	for _, kind := range []Kind{KindArticle, KindResource} {
		files, err := fs.Glob(fsys, string(kind)+"/*.md")
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", kind, err)
		}
		items := make([]Item, 0, len(files))
		for _, file := range files {
			raw, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}
			item, err := parseItem(md, kind, strings.TrimSuffix(path.Base(file), ".md"), raw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", file, err)
			}
			items = append(items, item)
		}
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Published.After(items[b].Published)
		})
		lib.items[kind] = items
	}
	return lib, nil
}

func parseItem(md goldmark.Markdown, kind Kind, slug string, raw []byte) (Item, error) {
	var meta frontMatter
	body := raw
	if rest, ok := bytes.CutPrefix(raw, []byte("---\n")); ok {
		header, content, found := bytes.Cut(rest, []byte("\n---\n"))
		if !found {
			return Item{}, errors.New("unterminated front matter")
		}
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return Item{}, fmt.Errorf("invalid front matter: %w", err)
		}
		body = content
	}

	var html bytes.Buffer
	if err := md.Convert(body, &html); err != nil {
		return Item{}, err
	}

	title := meta.Title
	if title == "" {
		title = slug
	}
	return Item{
		Kind:      kind,
		Slug:      slug,
		Title:     title,
		Summary:   meta.Summary,
		Published: meta.Published,
		HTML:      html.String(),
	}, nil
}

// List returns up to limit items of kind, newest first. limit < 1 means all.
func (l *Library) List(kind Kind, limit int) []Item {
	items := l.items[kind]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Get returns the item of kind with the given slug.
func (l *Library) Get(kind Kind, slug string) (Item, error) {
	for _, item := range l.items[kind] {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, slug)
}

// Page returns the page-th page (1-based) of size items of kind, newest first,
// along with the total number of items. Pages past the end are empty.
func (l *Library) Page(kind Kind, page, size int) ([]Item, int) {
	items := l.items[kind]
	total := len(items)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = total
	}
	start := (page - 1) * size
	if start >= total {
		return []Item{}, total
	}
	end := min(start+size, total)
	out := make([]Item, end-start)
	copy(out, items[start:end])
	return out, total
}
