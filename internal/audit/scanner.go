package audit

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/okanv/sitelint/internal/model"
)

const (
	// contentExt is the extension of auditable documents.
	contentExt = ".html"
	// indexFile is the document that makes a directory addressable.
	indexFile = "index.html"
)

// Scanner discovers content documents under the site root.
type Scanner struct {
	root string
	cfg  *Config
	log  *slog.Logger
}

// NewScanner returns a Scanner for the given site root.
func NewScanner(root string, cfg *Config, log *slog.Logger) *Scanner {
	return &Scanner{root: root, cfg: cfg, log: log}
}

// Scan walks the site root and returns every content document in lexical
// order, pruning ignored directories and skipping ignored files. Failure to
// read the root is fatal; the caller aborts the run.
func (s *Scanner) Scan() ([]model.DocumentRef, error) {
	var docs []model.DocumentRef

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return fmt.Errorf("scan %s: %w", s.root, err)
			}
			s.log.Warn("scan: unreadable entry skipped", "path", path, "error", err)
			return nil
		}

		if d.IsDir() {
			if path != s.root && s.cfg.ShouldIgnorePath(path) {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), contentExt) || s.cfg.ShouldIgnoreFile(d.Name()) {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		docs = append(docs, model.DocumentRef{
			AbsPath: path,
			RelPath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}
