package audit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okanv/sitelint/internal/model"
)

// LinkGraph records inbound internal links: target document → set of source
// documents. A target appears only if it resolved to an existing file at
// least once. Built sequentially during extraction, read-only afterwards.
type LinkGraph struct {
	inbound map[string]map[string]struct{}
}

// NewLinkGraph returns an empty graph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{inbound: make(map[string]map[string]struct{})}
}

// Add records an inbound link from source to target. Both are root-relative
// document paths.
func (g *LinkGraph) Add(target, source string) {
	set, ok := g.inbound[target]
	if !ok {
		set = make(map[string]struct{})
		g.inbound[target] = set
	}
	set[source] = struct{}{}
}

// HasInbound reports whether target received at least one internal link.
func (g *LinkGraph) HasInbound(target string) bool {
	return len(g.inbound[target]) > 0
}

// Sources returns the sorted set of documents linking to target.
func (g *LinkGraph) Sources(target string) []string {
	out := make([]string, 0, len(g.inbound[target]))
	for s := range g.inbound[target] {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Targets returns all linked-to documents, sorted.
func (g *LinkGraph) Targets() []string {
	out := make([]string, 0, len(g.inbound))
	for t := range g.inbound {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Resolver maps raw internal hrefs to canonical documents on disk.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver rooted at the site root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve maps an internal href, as written in source, to the document it
// addresses. Fragments and query strings are stripped first; the remaining
// path resolves against the site root when absolute, or against the source
// document's directory when relative. Existence is tried in order: the path
// itself, the path with the content extension appended, then an index
// document inside the path. The returned ref names the actual file found.
func (r *Resolver) Resolve(href string, source model.DocumentRef) (model.DocumentRef, bool) {
	target := href
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}

	var local string
	if strings.HasPrefix(target, "/") {
		local = filepath.Join(r.root, filepath.FromSlash(strings.TrimPrefix(target, "/")))
	} else {
		local = filepath.Join(filepath.Dir(source.AbsPath), filepath.FromSlash(target))
	}

	for _, candidate := range []string{local, local + contentExt, filepath.Join(local, indexFile)} {
		if isFile(candidate) {
			rel, err := filepath.Rel(r.root, candidate)
			if err != nil {
				return model.DocumentRef{}, false
			}
			return model.DocumentRef{AbsPath: candidate, RelPath: filepath.ToSlash(rel)}, true
		}
	}
	return model.DocumentRef{}, false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
