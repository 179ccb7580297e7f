// Package gemini embeds corpus documents with the Gemini embedding API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/phylotext"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the embedding model used when EmbedOptions.Model is
	// empty.
	DefaultModel = "gemini-embedding-001"

	// BatchSize is the largest number of documents sent in one request.
	BatchSize = 100

	// MaxWords caps the words of a document sent for embedding.
	MaxWords = 1500

	// MaxTokens is the input limit of the embedding model.
	MaxTokens = 2048

	// TaskType tunes the embeddings for clustering.
	TaskType = "CLUSTERING"
)

// Ensure Embedder implements phylotext.Embedder at compile time.
var _ phylotext.Embedder = (*Embedder)(nil)

// Models is the part of the genai client the Embedder calls.
// *genai.Models satisfies it.
type Models interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Counter counts model tokens in a text.
type Counter interface {
	CountTokens(text string) (int, error)
}

// Embedder implements phylotext.Embedder using Gemini embeddings.
type Embedder struct {
	models  Models
	counter Counter
}

// NewEmbedder creates a new Embedder. The counter is optional; without it
// documents are only truncated to MaxWords.
func NewEmbedder(models Models, counter Counter) *Embedder {
	return &Embedder{models: models, counter: counter}
}

// Name identifies the embedder.
func (e *Embedder) Name() string {
	return "gemini"
}

// Embed returns one vector per document, keyed by document index.
func (e *Embedder) Embed(ctx context.Context, docs []phylotext.TaggedDocument, opts phylotext.EmbedOptions) (map[int][]float32, error) {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	config := BuildConfig(opts.Dimensions)

	vectors := make(map[int][]float32, len(docs))
	for start := 0; start < len(docs); start += BatchSize {
		batch := docs[start:min(start+BatchSize, len(docs))]

		contents, err := e.BuildContents(batch)
		if err != nil {
			return nil, err
		}

		resp, err := e.models.EmbedContent(ctx, model, contents, config)
		if err != nil {
			return nil, fmt.Errorf("embed documents %d-%d: %w", start, start+len(batch)-1, err)
		}
		if resp == nil || len(resp.Embeddings) != len(batch) {
			got := 0
			if resp != nil {
				got = len(resp.Embeddings)
			}
			return nil, phylotext.Errorf(phylotext.EINTERNAL, "gemini returned %d embeddings for %d documents", got, len(batch))
		}

		for i, emb := range resp.Embeddings {
			if emb == nil || len(emb.Values) == 0 {
				return nil, phylotext.Errorf(phylotext.EINTERNAL, "gemini returned an empty embedding for %q", batch[i].Family)
			}
			vectors[batch[i].Index] = emb.Values
		}
	}
	return vectors, nil
}

// BuildConfig returns the EmbedContentConfig for a request. A positive
// dimensions truncates the output vectors.
func BuildConfig(dimensions int) *genai.EmbedContentConfig {
	config := &genai.EmbedContentConfig{TaskType: TaskType}
	if dimensions > 0 {
		d := int32(dimensions)
		config.OutputDimensionality = &d
	}
	return config
}

// BuildContents turns documents into request contents, truncating each to
// MaxWords and, when a counter is set, to MaxTokens. Returns EINVALID for a
// document without words.
func (e *Embedder) BuildContents(docs []phylotext.TaggedDocument) ([]*genai.Content, error) {
	contents := make([]*genai.Content, len(docs))
	for i, doc := range docs {
		if len(doc.Words) == 0 {
			return nil, phylotext.Errorf(phylotext.EINVALID, "document %d (%s) has no words", doc.Index, doc.Family)
		}
		text, err := e.truncate(doc.Words)
		if err != nil {
			return nil, err
		}
		contents[i] = genai.NewContentFromText(text, "user")
	}
	return contents, nil
}

func (e *Embedder) truncate(words []string) (string, error) {
	words = words[:min(len(words), MaxWords)]
	text := strings.Join(words, " ")
	if e.counter == nil {
		return text, nil
	}

	for {
		n, err := e.counter.CountTokens(text)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n <= MaxTokens || len(words) <= 1 {
			return text, nil
		}
		// Shrink proportionally with a margin; token density varies.
		words = words[:max(1, len(words)*MaxTokens*9/(n*10))]
		text = strings.Join(words, " ")
	}
}
