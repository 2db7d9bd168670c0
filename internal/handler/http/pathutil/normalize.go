// Package pathutil maps request paths to route templates for metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// UnmatchedPath is the label of every path outside the route table.
const UnmatchedPath = "/:unmatched"

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/handlers/[^/]+/[^/]+$`), Template: "/handlers/:type/:topic"},
	{Pattern: regexp.MustCompile(`^/handlers/[^/]+$`), Template: "/handlers/:type"},
	{Pattern: regexp.MustCompile(`^/settings/[^/]+$`), Template: "/settings/:type"},
	{Pattern: regexp.MustCompile(`^/notifications/[^/]+$`), Template: "/notifications/:topic"},
}

// staticPaths are routes without path parameters.
var staticPaths = map[string]struct{}{
	"/":              {},
	"/notifications": {},
	"/health":        {},
	"/ready":         {},
	"/live":          {},
	"/metrics":       {},
}

// NormalizePath converts a request path into its route template so topics
// and handler types do not become label values.
//
// Examples:
//
//	NormalizePath("/notifications/alerts")     // "/notifications/:topic"
//	NormalizePath("/handlers/email/alerts")    // "/handlers/:type/:topic"
//	NormalizePath("/notifications/")           // "/notifications"
//	NormalizePath("/health")                   // "/health"
//	NormalizePath("/wp-admin/login.php")       // "/:unmatched"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return UnmatchedPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(pathPatterns) + len(staticPaths) + 1
}
