package audit

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/okanv/sitelint/internal/model"
)

// writeDoc creates a file (and any parent directories) under root.
func writeDoc(t *testing.T, root, rel, content string) model.DocumentRef {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return model.DocumentRef{AbsPath: abs, RelPath: rel}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a Config with the built-in ignore defaults and no
// base URL.
func testConfig(home string) *Config {
	return &Config{
		HomeRel:             home,
		IgnorePaths:         defaultIgnorePaths,
		IgnoreFiles:         defaultIgnoreFiles,
		IgnoreURLPrefixes:   defaultIgnoreURLPrefixes,
		IgnoreURLSubstrings: defaultIgnoreURLSubstrings,
	}
}

// issueMessages flattens recorded issues to their messages.
func issueMessages(issues []model.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Message)
	}
	return out
}

// hasIssue reports whether any issue matches level and message prefix.
func hasIssue(issues []model.Issue, level model.Level, prefix string) bool {
	return countIssues(issues, level, prefix) > 0
}

// countIssues counts issues matching level whose message starts with prefix.
func countIssues(issues []model.Issue, level model.Level, prefix string) int {
	var n int
	for _, is := range issues {
		if is.Level == level && len(is.Message) >= len(prefix) && is.Message[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
