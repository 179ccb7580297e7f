package phylotext

import (
	"context"
	"strings"
)

// MinTokenLength is the shortest token kept in a corpus document.
const MinTokenLength = 4

// TaggedDocument is a family's token sequence labeled with its registry
// index. The index is the join key between embeddings, cluster assignments
// and the registry.
type TaggedDocument struct {
	Index  int
	Family string
	Words  []string
}

// Tokenize turns article text into corpus tokens. Every byte outside
// [A-Za-z0-9-] separates tokens, so hyphenated terms stay whole, and tokens
// shorter than MinTokenLength are dropped.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, f := range fields {
		if len(f) >= MinTokenLength {
			words = append(words, f)
		}
	}
	return words
}

// CorpusReader builds the tagged corpus from stored per-family documents.
type CorpusReader interface {
	// ReadCorpus returns documents in ascending file name order. Documents
	// whose family has no registry entry are skipped and their names
	// returned separately.
	ReadCorpus(ctx context.Context, reg *Registry) (docs []TaggedDocument, skipped []string, err error)
}
