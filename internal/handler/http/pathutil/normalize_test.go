package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"notification topic", "/notifications/alerts", "/notifications/:topic"},
		{"notification topic with query", "/notifications/alerts?fromTime=1", "/notifications/:topic"},
		{"notification history", "/notifications", "/notifications"},
		{"notification history trailing slash", "/notifications/", "/notifications"},
		{"handler list", "/handlers/email", "/handlers/:type"},
		{"handler by topic", "/handlers/email/alerts", "/handlers/:type/:topic"},
		{"handler by topic trailing slash", "/handlers/email/alerts/", "/handlers/:type/:topic"},
		{"settings", "/settings/email", "/settings/:type"},
		{"health", "/health", "/health"},
		{"metrics", "/metrics", "/metrics"},
		{"root", "/", "/"},
		{"unknown", "/wp-admin/login.php", UnmatchedPath},
		{"too deep", "/notifications/a/b", UnmatchedPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got != 11 {
		t.Errorf("GetExpectedCardinality() = %d, want 11", got)
	}
}
