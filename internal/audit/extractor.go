package audit

import (
	"strings"

	"github.com/okanv/sitelint/internal/model"
)

// Extractor runs per-document semantic checks and classifies every outbound
// link, feeding the link graph and the external URL set. Extraction is
// strictly sequential: it is the only writer of both structures.
type Extractor struct {
	cfg      *Config
	resolver *Resolver
	graph    *LinkGraph
	external *ExternalSet
	issues   *Collector
}

// NewExtractor wires an Extractor to the run's shared state.
func NewExtractor(cfg *Config, resolver *Resolver, graph *LinkGraph, external *ExternalSet, issues *Collector) *Extractor {
	return &Extractor{
		cfg:      cfg,
		resolver: resolver,
		graph:    graph,
		external: external,
		issues:   issues,
	}
}

// Extract audits a single document. A document that cannot be read or
// parsed yields exactly one ERROR issue and contributes no link data.
func (e *Extractor) Extract(ref model.DocumentRef) {
	doc, err := LoadDocument(ref)
	if err != nil {
		e.issues.Add(model.LevelError, "Failed to process file: "+err.Error(), ref.RelPath, 0)
		return
	}

	e.checkSemantics(doc)

	for _, a := range doc.Anchors() {
		if e.cfg.ShouldIgnoreURL(a.Href) {
			continue
		}

		if !isAbsoluteHTTP(a.Href) {
			e.auditInternal(a.Href, ref)
			continue
		}

		if e.cfg.BaseURL != "" && strings.HasPrefix(a.Href, e.cfg.BaseURL) {
			// Internal link written as an absolute URL. Audit the stripped
			// path, but flag the style: internal links should be
			// root-relative.
			e.issues.Add(model.LevelWarn, "Internal link uses absolute URL: "+a.Href, ref.RelPath, penaltyAbsoluteInternal)
			e.auditInternal(strings.TrimPrefix(a.Href, e.cfg.BaseURL), ref)
			continue
		}

		e.external.Add(a.Href)
		if e.cfg.RequireNoopener && !a.HasRel("noopener") {
			e.issues.Add(model.LevelWarn, `External link missing rel="noopener": `+a.Href, ref.RelPath, penaltyMissingNoopener)
		}
	}
}

func (e *Extractor) checkSemantics(doc *Document) {
	rel := doc.Ref().RelPath

	switch h1s := doc.HeadingCount(1); {
	case h1s == 0:
		e.issues.Add(model.LevelError, "Missing <h1> tag", rel, penaltyMissingH1)
	case h1s > 1:
		e.issues.Add(model.LevelWarn, "Multiple <h1> tags found", rel, penaltyMultipleH1)
	}

	if !doc.HasStructuredData() {
		e.issues.Add(model.LevelWarn, "Missing Schema (application/ld+json)", rel, penaltyMissingSchema)
	}
}

// auditInternal applies link-style warnings and resolution to an internal
// href. The style warnings fire regardless of whether the link resolves.
func (e *Extractor) auditInternal(href string, source model.DocumentRef) {
	if strings.HasSuffix(href, ".html") || strings.HasSuffix(href, ".htm") {
		e.issues.Add(model.LevelWarn, "Link contains .html extension: "+href, source.RelPath, penaltyHTMLExtension)
	}
	if !strings.HasPrefix(href, "/") {
		e.issues.Add(model.LevelWarn, "Link uses relative path: "+href, source.RelPath, penaltyRelativePath)
	}

	target, ok := e.resolver.Resolve(href, source)
	if !ok {
		e.issues.Add(model.LevelError, "Dead link detected: "+href, source.RelPath, penaltyDeadLink)
		return
	}
	e.graph.Add(target.RelPath, source.RelPath)
}

func isAbsoluteHTTP(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
