// Package pathutil maps request paths onto route templates for use as
// metric labels.
package pathutil

import "strings"

// staticRoutes are served as-is; every other /articles/<segment> is an id route.
var staticRoutes = map[string]bool{
	"/articles":        true,
	"/articles/drafts": true,
	"/health":          true,
	"/ready":           true,
	"/live":            true,
	"/metrics":         true,
}

// NormalizePath converts a request path into a bounded label.
//
//	NormalizePath("/articles/123")        // "/articles/:id"
//	NormalizePath("/articles/string-id")  // "/articles/:id"
//	NormalizePath("/articles/drafts")     // "/articles/drafts"
//	NormalizePath("/swagger/index.html")  // "/swagger/*"
//	NormalizePath("/nope/42")             // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if staticRoutes[path] {
		return path
	}
	if rest, ok := strings.CutPrefix(path, "/articles/"); ok && rest != "" && !strings.Contains(rest, "/") {
		return "/articles/:id"
	}
	if strings.HasPrefix(path, "/swagger") {
		return "/swagger/*"
	}
	// Unknown paths share one label so scanners cannot inflate cardinality.
	return "other"
}
