// Package readability extracts article prose with go-readability. It is the
// alternative to the trafilatura extractor for pages where the latter finds
// too little text.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/phylotext"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements phylotext.Extractor at compile time.
var _ phylotext.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct {
	// PageURL resolves relative links. Optional.
	PageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of an article page. Returns EFETCH if
// the page does not look like an article.
func (e *Extractor) Extract(rawHTML string) (*phylotext.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, phylotext.Errorf(phylotext.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.PageURL)
	if err != nil {
		return nil, phylotext.Errorf(phylotext.EFETCH, "no readable content: %v", err)
	}

	return &phylotext.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
