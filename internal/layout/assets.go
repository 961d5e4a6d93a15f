package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Bundles every page can end up with regardless of the routing tables.
const (
	MainCSS       = "/static/main.css"
	CommonCSS     = "/static/common.css"
	HomeJS        = "/static/js/home.js"
	NavigationCSS = "/static/css/navigation.css"
	NavigationJS  = "/static/js/navigation.js"
)

var (
	// ErrInvalidTables is returned when asset routing tables fail validation.
	ErrInvalidTables = errors.New("invalid asset tables")

	//go:embed assets.yaml
	assetsYAML []byte

	defaultTables = mustParseTables(assetsYAML)
)

// AssetSelection is the ordered stylesheets and scripts a page loads.
type AssetSelection struct {
	CSSFiles []string `json:"css_files"`
	JSFiles  []string `json:"js_files"`
}

// Tables maps top-level routes to their stylesheets and scripts. Tables are
// read-only once parsed and safe for concurrent use.
type Tables struct {
	css map[RouteKey][]string
	js  map[RouteKey][]string
}

type tablesFile struct {
	CSS map[string][]string `yaml:"css"`
	JS  map[string][]string `yaml:"js"`
}

// ParseTables reads routing tables from YAML. Every key must name a known
// route and every CSS entry must list at least one stylesheet.
func ParseTables(data []byte) (*Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}
	css, err := buildTable(file.CSS, false)
	if err != nil {
		return nil, fmt.Errorf("%w: css: %w", ErrInvalidTables, err)
	}
	js, err := buildTable(file.JS, true)
	if err != nil {
		return nil, fmt.Errorf("%w: js: %w", ErrInvalidTables, err)
	}
	return &Tables{css: css, js: js}, nil
}

func buildTable(raw map[string][]string, allowEmpty bool) (map[RouteKey][]string, error) {
	table := make(map[RouteKey][]string, len(raw))
	for name, urls := range raw {
		key := RouteKey(name)
		if !key.Known() {
			return nil, fmt.Errorf("unknown route %q", name)
		}
		if len(urls) == 0 && !allowEmpty {
			return nil, fmt.Errorf("route %q has no assets", name)
		}
		for _, url := range urls {
			if url == "" {
				return nil, fmt.Errorf("route %q has an empty asset URL", name)
			}
		}
		table[key] = slices.Clone(urls)
	}
	return table, nil
}

func mustParseTables(data []byte) *Tables {
	tables, err := ParseTables(data)
	if err != nil {
		panic(err)
	}
	return tables
}

// DefaultTables returns the routing tables embedded in the binary.
func DefaultTables() *Tables {
	return defaultTables
}

// Resolve picks assets for the classified path using the embedded tables.
func Resolve(c Classification) AssetSelection {
	return defaultTables.Resolve(c)
}

// Resolve picks the stylesheets and scripts for a classified path. The
// returned slices are copies; the result always has at least one stylesheet.
func (t *Tables) Resolve(c Classification) AssetSelection {
	return AssetSelection{
		CSSFiles: t.resolveCSS(c),
		JSFiles:  t.resolveJS(c),
	}
}

func (t *Tables) resolveCSS(c Classification) []string {
	if !c.HasContext {
		return []string{MainCSS}
	}
	if c.IsDetail() {
		// detail pages share the listing layout
		return []string{MainCSS}
	}
	if files, ok := t.css[ParseRouteKey(c.BasePath)]; ok {
		return slices.Clone(files)
	}
	// The base path "" is RouteHome, so with the embedded tables (which
	// always have a home entry) this branch only serves tables without one.
	if len(c.Segments) > 0 {
		if files, ok := t.css[ParseRouteKey(c.Segments[0])]; ok {
			return slices.Clone(files)
		}
	}
	return []string{CommonCSS}
}

func (t *Tables) resolveJS(c Classification) []string {
	files := []string{}
	if entry, ok := t.js[ParseRouteKey(c.BasePath)]; ok && c.HasContext {
		files = slices.Clone(entry)
	}
	if !c.HasContext && len(files) == 0 {
		return []string{HomeJS}
	}
	return files
}
