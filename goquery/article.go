package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/phylotext"
)

// Selectors identifying article pages that carry no usable content.
const (
	redirectSelector     = ".redirectMsg"
	disambiguationSelect = "#disambigbox, .dmbox-disambig"
	missingSelector      = ".noarticletext"
)

// CheckArticle returns EFETCH if the page is a redirect stub, a
// disambiguation page or a missing-article notice.
func CheckArticle(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return phylotext.Errorf(phylotext.EFETCH, "failed to parse HTML: %v", err)
	}

	switch {
	case doc.Find(redirectSelector).Length() > 0:
		target := strings.TrimSpace(doc.Find(redirectSelector + " a").First().Text())
		return phylotext.Errorf(phylotext.EFETCH, "page is a redirect to %q", target)
	case doc.Find(disambiguationSelect).Length() > 0:
		return phylotext.Errorf(phylotext.EFETCH, "page is a disambiguation page")
	case doc.Find(missingSelector).Length() > 0:
		return phylotext.Errorf(phylotext.EFETCH, "page does not exist")
	}
	return nil
}

// contentSelector is the article body container.
const contentSelector = "#mw-content-text"

// boilerplateSelector matches page furniture that is not part of the article
// prose: edit links, navigation boxes, infoboxes, citations and hatnotes.
const boilerplateSelector = ".mw-editsection, .navbox, .vertical-navbox, .infobox, .taxobox, " +
	".reference, .reflist, .hatnote, .shortdescription, .mw-jump-link, #toc, .toc, " +
	"table.metadata, .ambox, .sistersitebox, .noprint, style, script"

// CleanArticle returns the HTML of the article body with boilerplate
// removed. Pages without a body container are cleaned as a whole.
func CleanArticle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", phylotext.Errorf(phylotext.EFETCH, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	body := doc.Find(contentSelector).First()
	if body.Length() == 0 {
		return goquery.OuterHtml(doc.Selection)
	}

	title := strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	inner, err := body.Html()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<html><head><title>")
	b.WriteString(escapeText(title))
	b.WriteString("</title></head><body><article>")
	b.WriteString(inner)
	b.WriteString("</article></body></html>")
	return b.String(), nil
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
