package phylotext

// ExtractResult holds the main content of an article page.
type ExtractResult struct {
	Title string

	// ContentHTML is the article body with navigation, sidebars and
	// infoboxes removed.
	ContentHTML string
}

// Extractor extracts the article body from a page, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
