// Package page is the read-only page collaborator: a snapshot of one
// document plus a structural fingerprint and a mutation-event feed the
// host environment drives. The pipeline never mutates the page.
package page

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot captures one view of a page. URL and DeclaredLang come from
// the host; Doc is the parsed document tree.
type Snapshot struct {
	URL          string
	Title        string
	DeclaredLang string
	Doc          *goquery.Document
}

// NewSnapshot parses raw HTML into a Snapshot. The declared language is
// read from the root <html lang> attribute when present.
func NewSnapshot(rawURL, html string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	lang, _ := doc.Find("html").Attr("lang")

	return &Snapshot{
		URL:          rawURL,
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		DeclaredLang: lang,
		Doc:          doc,
	}, nil
}

// Text returns the page body text with collapsed whitespace.
func (s *Snapshot) Text() string {
	return strings.Join(strings.Fields(s.Doc.Find("body").Text()), " ")
}

// Fingerprint hashes the tag structure of the document (element names
// in document order, text ignored). Two snapshots with the same URL and
// fingerprint are considered the same page state for caching.
func (s *Snapshot) Fingerprint() string {
	h := sha256.New()
	s.Doc.Find("body *").Each(func(i int, sel *goquery.Selection) {
		h.Write([]byte(goquery.NodeName(sel)))
		h.Write([]byte{'/'})
	})
	return hex.EncodeToString(h.Sum(nil)[:8])
}
