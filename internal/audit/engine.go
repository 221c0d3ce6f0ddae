package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okanv/sitelint/internal/model"
	"github.com/okanv/sitelint/internal/platform/errs"
	"github.com/okanv/sitelint/internal/platform/runid"
)

// externalChecker defines how the engine validates external link liveness.
type externalChecker interface {
	Check(ctx context.Context, urls []string) []Probe
}

// Options carries operator overrides layered on top of the configuration
// resolved from the canonical document.
type Options struct {
	RequireNoopener bool

	ExtraIgnorePaths       []string
	ExtraIgnoreFiles       []string
	ExtraIgnoreURLPrefixes []string
}

// Engine orchestrates one full audit run: configuration resolution,
// document scanning, link extraction, orphan detection, external checking,
// and scoring. Scanning through extraction is strictly sequential; only the
// external check phase is concurrent.
type Engine struct {
	root    string
	home    string
	opts    Options
	checker externalChecker
	log     *slog.Logger
}

// NewEngine returns an Engine auditing the site rooted at root, with home
// as the canonical document path relative to root.
func NewEngine(root, home string, opts Options, checker externalChecker, log *slog.Logger) *Engine {
	return &Engine{
		root:    root,
		home:    home,
		opts:    opts,
		checker: checker,
		log:     log,
	}
}

// Run performs a complete audit and returns the scored result together with
// the inbound-link graph. Only an unreadable site root is fatal; every
// content defect is recorded as an issue and the run always produces a
// report otherwise.
func (e *Engine) Run(ctx context.Context) (*model.AuditResult, *LinkGraph, error) {
	log := e.log
	if id := runid.FromContext(ctx); id != "" {
		log = log.With("run_id", id)
	}

	cfg, startup := ResolveConfig(e.root, e.home)
	cfg.RequireNoopener = e.opts.RequireNoopener
	cfg.IgnorePaths = append(cfg.IgnorePaths, e.opts.ExtraIgnorePaths...)
	cfg.IgnoreFiles = append(cfg.IgnoreFiles, e.opts.ExtraIgnoreFiles...)
	cfg.IgnoreURLPrefixes = append(cfg.IgnoreURLPrefixes, e.opts.ExtraIgnoreURLPrefixes...)

	issues := NewCollector(log)
	for _, is := range startup {
		issues.Record(is)
	}

	docs, err := NewScanner(e.root, cfg, log).Scan()
	if err != nil {
		return nil, nil, &errs.AppError{
			Kind:    errs.ScanFailed,
			Message: "The site root could not be read.",
			Cause:   err,
		}
	}
	log.Info("scan complete", "root", e.root, "documents", len(docs))

	graph := NewLinkGraph()
	external := NewExternalSet()
	extractor := NewExtractor(cfg, NewResolver(e.root), graph, external, issues)
	for _, ref := range docs {
		extractor.Extract(ref)
	}

	DetectOrphans(docs, graph, cfg, issues)

	log.Info("checking external links", "unique_urls", external.Len())
	for _, p := range e.checker.Check(ctx, external.URLs()) {
		switch {
		case p.Err != nil:
			// A network hiccup is not a content defect: surface it, score it zero.
			issues.Add(model.LevelWarn,
				fmt.Sprintf("External check failed: %s (%v)", p.URL, p.Err),
				model.ContextGlobal, 0)
		case p.StatusCode >= 400:
			issues.Add(model.LevelError,
				fmt.Sprintf("External dead link (%d): %s", p.StatusCode, p.URL),
				model.ContextGlobal, penaltyExternalDead)
		}
	}

	raw := issues.Score()
	result := &model.AuditResult{
		BaseURL:           cfg.BaseURL,
		Keywords:          cfg.Keywords,
		DocumentCount:     len(docs),
		ExternalLinkCount: external.Len(),
		Issues:            issues.Issues(),
		RawScore:          raw,
		Score:             max(0, raw),
	}
	return result, graph, nil
}
