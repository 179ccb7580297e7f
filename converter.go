package phylotext

// Converter converts extracted article HTML to Markdown text.
type Converter interface {
	// Convert returns EINVALID for blank input.
	Convert(html string) (string, error)
}
