package audit

import (
	"strings"
	"testing"

	"github.com/okanv/sitelint/internal/model"
)

func parse(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := ParseDocument(model.DocumentRef{RelPath: "test.html"}, strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestAnchors(t *testing.T) {
	doc := parse(t, `<html><body>
		<a href="/one">one</a>
		<a href=" /two ">padded</a>
		<a href="">empty</a>
		<a>no href</a>
		<a href="https://x.org" rel="noopener nofollow">ext</a>
	</body></html>`)

	anchors := doc.Anchors()
	if len(anchors) != 3 {
		t.Fatalf("anchors = %d, want 3 (empty and missing hrefs dropped)", len(anchors))
	}
	if anchors[0].Href != "/one" {
		t.Errorf("first href = %q", anchors[0].Href)
	}
	if anchors[1].Href != "/two" {
		t.Errorf("href = %q, want whitespace trimmed", anchors[1].Href)
	}
	if !anchors[2].HasRel("noopener") || !anchors[2].HasRel("NOFOLLOW") {
		t.Errorf("rel tokens not parsed: %v", anchors[2].Rel)
	}
	if anchors[0].HasRel("noopener") {
		t.Error("anchor without rel must report no tokens")
	}
}

func TestHeadingCount(t *testing.T) {
	doc := parse(t, `<html><body><h1>a</h1><h2>b</h2><h2>c</h2></body></html>`)
	if got := doc.HeadingCount(1); got != 1 {
		t.Errorf("h1 count = %d, want 1", got)
	}
	if got := doc.HeadingCount(2); got != 2 {
		t.Errorf("h2 count = %d, want 2", got)
	}
	if got := doc.HeadingCount(3); got != 0 {
		t.Errorf("h3 count = %d, want 0", got)
	}
}

func TestHasStructuredData(t *testing.T) {
	with := parse(t, `<html><head><script type="application/ld+json">{"@type":"WebSite"}</script></head></html>`)
	if !with.HasStructuredData() {
		t.Error("JSON-LD block not detected")
	}
	without := parse(t, `<html><head><script src="/app.js"></script></head></html>`)
	if without.HasStructuredData() {
		t.Error("plain script must not count as structured data")
	}
}

func TestMetaQueries(t *testing.T) {
	doc := parse(t, `<html><head>
		<link rel="canonical" href="https://example.com/">
		<meta property="og:url" content="https://og.example.com">
		<meta name="keywords" content="a, b">
	</head></html>`)

	if got := doc.LinkHref("canonical"); got != "https://example.com/" {
		t.Errorf("canonical = %q", got)
	}
	if got := doc.MetaProperty("og:url"); got != "https://og.example.com" {
		t.Errorf("og:url = %q", got)
	}
	if got := doc.MetaContent("keywords"); got != "a, b" {
		t.Errorf("keywords = %q", got)
	}
	if got := doc.MetaContent("description"); got != "" {
		t.Errorf("absent meta = %q, want empty", got)
	}
}
