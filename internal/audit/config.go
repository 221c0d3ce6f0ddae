package audit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/okanv/sitelint/internal/model"
)

// Built-in ignore rules. Path and file rules match by substring; URL rules
// split into scheme-like prefixes and tracking-redirector substrings so an
// in-page fragment suffix does not hide an otherwise resolvable link.
var (
	defaultIgnorePaths = []string{".git", "node_modules", "__pycache__", ".DS_Store"}
	defaultIgnoreFiles = []string{"google", "404.html"}

	defaultIgnoreURLPrefixes   = []string{"javascript:", "mailto:", "tel:", "#"}
	defaultIgnoreURLSubstrings = []string{"/go/", "cdn-cgi"}
)

// Config is the immutable site-level audit configuration, resolved once per
// run from the canonical document and threaded through every component.
type Config struct {
	// BaseURL is the site's absolute URL without trailing slash. Empty when
	// the canonical document declares none; absolute-URL detection for
	// internal links then never matches.
	BaseURL  string
	Keywords []string

	// HomeRel is the canonical document's path relative to the site root.
	// The home page is exempt from orphan detection.
	HomeRel string

	IgnorePaths         []string
	IgnoreFiles         []string
	IgnoreURLPrefixes   []string
	IgnoreURLSubstrings []string

	// RequireNoopener enables the optional rule warning on external links
	// without rel="noopener".
	RequireNoopener bool
}

// ResolveConfig builds the audit configuration from the canonical document
// at root/home. A missing or unparsable canonical document is not fatal: it
// yields a startup ERROR issue and an otherwise default configuration.
func ResolveConfig(root, home string) (*Config, []model.Issue) {
	cfg := &Config{
		HomeRel:             filepath.ToSlash(home),
		IgnorePaths:         defaultIgnorePaths,
		IgnoreFiles:         defaultIgnoreFiles,
		IgnoreURLPrefixes:   defaultIgnoreURLPrefixes,
		IgnoreURLSubstrings: defaultIgnoreURLSubstrings,
	}

	ref := model.DocumentRef{
		AbsPath: filepath.Join(root, filepath.FromSlash(home)),
		RelPath: cfg.HomeRel,
	}
	doc, err := LoadDocument(ref)
	if err != nil {
		msg := "Failed to parse canonical document: " + err.Error()
		if os.IsNotExist(err) {
			msg = "Canonical document " + cfg.HomeRel + " not found: cannot auto-configure"
		}
		return cfg, []model.Issue{{
			Level:   model.LevelError,
			Message: msg,
			Context: model.ContextGlobal,
		}}
	}

	var issues []model.Issue

	switch {
	case doc.LinkHref("canonical") != "":
		cfg.BaseURL = strings.TrimRight(doc.LinkHref("canonical"), "/")
	case doc.MetaProperty("og:url") != "":
		cfg.BaseURL = strings.TrimRight(doc.MetaProperty("og:url"), "/")
	default:
		issues = append(issues, model.Issue{
			Level:   model.LevelWarn,
			Message: "No base URL found (canonical/og:url); absolute internal links will not be detected",
			Context: model.ContextGlobal,
		})
	}

	if kw := doc.MetaContent("keywords"); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.Keywords = append(cfg.Keywords, k)
			}
		}
	}

	return cfg, issues
}

// ShouldIgnorePath reports whether a directory path matches an ignore rule.
func (c *Config) ShouldIgnorePath(path string) bool {
	return containsAny(path, c.IgnorePaths)
}

// ShouldIgnoreFile reports whether a file name matches an ignore rule.
func (c *Config) ShouldIgnoreFile(name string) bool {
	return containsAny(name, c.IgnoreFiles)
}

// ShouldIgnoreURL reports whether an href is a non-content link that should
// be skipped entirely.
func (c *Config) ShouldIgnoreURL(href string) bool {
	for _, p := range c.IgnoreURLPrefixes {
		if strings.HasPrefix(href, p) {
			return true
		}
	}
	return containsAny(href, c.IgnoreURLSubstrings)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
