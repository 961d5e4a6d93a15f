package layout

import "strings"

// RequestContext is the per-request information available to the renderer.
// A nil *RequestContext means the page is rendered outside of an HTTP request,
// e.g. by the preview tool.
type RequestContext struct {
	Path string
}

// Classification is a request path broken down for asset routing.
type Classification struct {
	// BasePath is the first segment of the path, "" for the site root.
	BasePath string

	// Segments holds the non-empty path segments, in order.
	Segments []string

	// HasContext is false when no request was available at all.
	HasContext bool
}

// Classify breaks the request's path into its base segment and its non-empty
// segments. It never fails; anything malformed classifies as the site root.
func Classify(req *RequestContext) Classification {
	if req == nil {
		return Classification{Segments: []string{}}
	}

	parts := strings.Split(req.Path, "/")
	result := Classification{
		Segments:   make([]string, 0, len(parts)),
		HasContext: true,
	}
	if len(parts) > 1 {
		result.BasePath = parts[1]
	}
	for _, part := range parts {
		if part != "" {
			result.Segments = append(result.Segments, part)
		}
	}
	return result
}

// IsDetail reports whether the path addresses a single item below a listing
// route, like /articles/42.
func (c Classification) IsDetail() bool {
	if len(c.Segments) != 2 {
		return false
	}
	switch ParseRouteKey(c.BasePath) {
	case RouteArticles, RouteResources:
		return true
	default:
		return false
	}
}
