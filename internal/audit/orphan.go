package audit

import (
	"github.com/okanv/sitelint/internal/model"
)

// DetectOrphans flags every discovered document that received zero inbound
// internal links, skipping the home document and ignore-listed files. A
// pure post-pass: it must only run after extraction of all documents has
// completed, since a page's sole inbound link may come from a document
// later in traversal order.
func DetectOrphans(docs []model.DocumentRef, graph *LinkGraph, cfg *Config, issues *Collector) {
	for _, ref := range docs {
		if ref.RelPath == cfg.HomeRel || cfg.ShouldIgnoreFile(ref.RelPath) {
			continue
		}
		if !graph.HasInbound(ref.RelPath) {
			issues.Add(model.LevelWarn, "Orphan page (0 inbound links)", ref.RelPath, penaltyOrphan)
		}
	}
}
