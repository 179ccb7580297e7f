package phylotext

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	markdownHeadingRe = regexp.MustCompile(`^#{1,6}\s+(.*?)\s*#*$`)
	wikiHeadingRe     = regexp.MustCompile(`^=+\s*(.*?)\s*=+$`)
	markdownLinkRe    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
)

// referencesHeading ends the article body; everything after it is citations.
const referencesHeading = "references"

// Preprocess strips article boilerplate before tokenization. Blank lines and
// section headings are dropped, markdown links keep only their text, and the
// text from the References heading onward is cut. Kept lines are case-folded.
func Preprocess(text string) string {
	fold := cases.Fold()

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if title, ok := heading(line); ok {
			if strings.EqualFold(title, referencesHeading) {
				break
			}
			continue
		}
		line = markdownLinkRe.ReplaceAllString(line, "$1")
		kept = append(kept, fold.String(line))
	}
	return strings.Join(kept, "\n")
}

// heading returns the title of a markdown or wikitext heading line.
func heading(line string) (string, bool) {
	if m := markdownHeadingRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := wikiHeadingRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}
