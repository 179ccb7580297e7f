// Package trafilatura extracts article prose with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/phylotext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements phylotext.Extractor at compile time.
var _ phylotext.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Tables and comment sections are dropped
// since only running text feeds the corpus.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			ExcludeTables:   true,
		},
	}
}

// Extract returns the main content of an article page.
func (e *Extractor) Extract(rawHTML string) (*phylotext.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, phylotext.Errorf(phylotext.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &phylotext.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
