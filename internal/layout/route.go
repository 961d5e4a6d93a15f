package layout

// RouteKey identifies a top-level route of the site.
type RouteKey string

const (
	RouteUnknown   RouteKey = "unknown"
	RouteHome      RouteKey = "home"
	RouteArticles  RouteKey = "articles"
	RouteResources RouteKey = "resources"
	RouteTrivia    RouteKey = "trivia"
	RouteAbout     RouteKey = "about"
	RouteLogin     RouteKey = "login"
	RouteRegister  RouteKey = "register"
	RouteAdmin     RouteKey = "admin"
)

var knownRoutes = map[string]RouteKey{
	"":          RouteHome,
	"articles":  RouteArticles,
	"resources": RouteResources,
	"trivia":    RouteTrivia,
	"about":     RouteAbout,
	"login":     RouteLogin,
	"register":  RouteRegister,
	"admin":     RouteAdmin,
}

// ParseRouteKey maps a path segment to its RouteKey. The empty segment is the
// home page; anything unrecognised is RouteUnknown.
func ParseRouteKey(segment string) RouteKey {
	if key, ok := knownRoutes[segment]; ok {
		return key
	}
	return RouteUnknown
}

// Known reports whether the key names a real route.
func (k RouteKey) Known() bool {
	if k == RouteUnknown {
		return false
	}
	for _, known := range knownRoutes {
		if known == k {
			return true
		}
	}
	return false
}
