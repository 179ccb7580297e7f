// Package goquery implements HTML inspection with goquery: extracting
// families from taxonomy browser dumps and checking article pages.
package goquery

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/phylotext"
)

// rankFamily is the title attribute the taxonomy browser puts on family-rank
// entries.
const rankFamily = "family"

var _ phylotext.TaxonomyParser = (*Parser)(nil)

// Parser extracts families from a taxonomy browser dump and partitions them
// into clade windows.
type Parser struct {
	Windows []phylotext.CladeWindow
	Policy  phylotext.Policy
}

// NewParser creates a Parser from a config.
func NewParser(cfg *phylotext.Config) *Parser {
	return &Parser{Windows: cfg.Windows, Policy: cfg.Policy}
}

// Parse reads the whole document, extracts every family and then re-extracts
// each clade window. Returns ESOURCEFORMAT if a window marker is missing.
func (p *Parser) Parse(r io.Reader) (*phylotext.Taxonomy, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy document: %w", err)
	}

	families, err := p.extract(raw)
	if err != nil {
		return nil, err
	}

	tax := &phylotext.Taxonomy{Families: families}
	for _, w := range p.Windows {
		span, err := windowSpan(raw, w)
		if err != nil {
			return nil, err
		}
		members, err := p.extract(span)
		if err != nil {
			return nil, err
		}
		tax.Clades = append(tax.Clades, phylotext.CladeSet{Label: w.Label, Members: members})
	}
	return tax, nil
}

// extract returns the normalized, sorted family names found in an HTML
// fragment.
func (p *Parser) extract(fragment []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return nil, phylotext.Errorf(phylotext.ESOURCEFORMAT, "failed to parse HTML: %v", err)
	}

	var raw []string
	doc.Find("[title]").Each(func(_ int, sel *goquery.Selection) {
		title, _ := sel.Attr("title")
		if !strings.EqualFold(strings.TrimSpace(title), rankFamily) {
			return
		}
		if name := emphasizedName(sel); name != "" {
			raw = append(raw, name)
		}
	})
	return p.Policy.Apply(raw), nil
}

// emphasizedName returns the bold name of a rank entry. The browser nests it
// inside the titled link; a directly following <strong> sibling is accepted
// too.
func emphasizedName(sel *goquery.Selection) string {
	strong := sel.Find("strong").First()
	if strong.Length() == 0 {
		strong = sel.NextFiltered("strong")
	}
	return strings.Join(strings.Fields(strong.Text()), " ")
}

// windowSpan returns the bytes between the first emphasized start marker and
// the first emphasized end marker after it.
func windowSpan(raw []byte, w phylotext.CladeWindow) ([]byte, error) {
	start := markerPattern(w.Start).FindIndex(raw)
	if start == nil {
		return nil, phylotext.Errorf(phylotext.ESOURCEFORMAT,
			"clade window %q: start marker %q not found", w.Label, w.Start)
	}
	rest := raw[start[1]:]
	if w.End == "" {
		return rest, nil
	}

	end := markerPattern(w.End).FindIndex(rest)
	if end == nil {
		return nil, phylotext.Errorf(phylotext.ESOURCEFORMAT,
			"clade window %q: end marker %q not found after %q", w.Label, w.End, w.Start)
	}
	return rest[:end[0]], nil
}

// markerPattern matches a taxon name rendered in bold.
func markerPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<strong>\s*` + regexp.QuoteMeta(name) + `\s*</strong>`)
}
