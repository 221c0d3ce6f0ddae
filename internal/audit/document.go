package audit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okanv/sitelint/internal/model"
)

// Document is a parsed content document exposing the small set of queries
// the audit needs. Callers never touch the underlying DOM directly.
type Document struct {
	ref model.DocumentRef
	sel *goquery.Document
}

// Anchor is a single <a> element with a non-empty href.
type Anchor struct {
	Href string
	Rel  []string
}

// HasRel reports whether the anchor's rel attribute contains the given token.
func (a Anchor) HasRel(token string) bool {
	for _, r := range a.Rel {
		if strings.EqualFold(r, token) {
			return true
		}
	}
	return false
}

// LoadDocument reads and parses the document at ref.AbsPath.
func LoadDocument(ref model.DocumentRef) (*Document, error) {
	f, err := os.Open(ref.AbsPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ParseDocument(ref, f)
}

// ParseDocument parses HTML from r into a queryable Document.
func ParseDocument(ref model.DocumentRef, r io.Reader) (*Document, error) {
	sel, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ref.RelPath, err)
	}
	return &Document{ref: ref, sel: sel}, nil
}

// Ref returns the identity of this document.
func (d *Document) Ref() model.DocumentRef {
	return d.ref
}

// Anchors returns every anchor with a non-empty href, in document order.
func (d *Document) Anchors() []Anchor {
	var out []Anchor
	d.sel.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		out = append(out, Anchor{
			Href: href,
			Rel:  strings.Fields(s.AttrOr("rel", "")),
		})
	})
	return out
}

// HeadingCount returns the number of <hN> elements for the given level.
func (d *Document) HeadingCount(level int) int {
	return d.sel.Find(fmt.Sprintf("h%d", level)).Length()
}

// HasStructuredData reports whether the document carries at least one
// JSON-LD script block.
func (d *Document) HasStructuredData() bool {
	return d.sel.Find(`script[type="application/ld+json"]`).Length() > 0
}

// LinkHref returns the href of the first <link> with the given rel value.
func (d *Document) LinkHref(rel string) string {
	return strings.TrimSpace(d.sel.Find(fmt.Sprintf(`link[rel=%q]`, rel)).AttrOr("href", ""))
}

// MetaContent returns the content of the first <meta name=...> tag.
func (d *Document) MetaContent(name string) string {
	return strings.TrimSpace(d.sel.Find(fmt.Sprintf(`meta[name=%q]`, name)).AttrOr("content", ""))
}

// MetaProperty returns the content of the first <meta property=...> tag,
// e.g. Open Graph entries.
func (d *Document) MetaProperty(property string) string {
	return strings.TrimSpace(d.sel.Find(fmt.Sprintf(`meta[property=%q]`, property)).AttrOr("content", ""))
}
