package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/analyze"
	"github.com/fwojciec/phylotext/fs"
)

// Locations inside the data directory.
const (
	PagesDir    = "pages"
	ModPagesDir = "pages_mod"
	CacheFile   = "cache.db"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Config    *phylotext.Config
	Dir       string
	Artifacts *fs.Artifacts

	ContentFetcher phylotext.ContentFetcher
	Analyzer       *analyze.Analyzer
}

// Pages returns the store of fetched articles.
func (d *Dependencies) Pages() *fs.PageStore {
	return fs.NewPageStore(filepath.Join(d.Dir, PagesDir))
}

// ModPages returns the store of preprocessed articles.
func (d *Dependencies) ModPages() *fs.PageStore {
	return fs.NewPageStore(filepath.Join(d.Dir, ModPagesDir))
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir     string `short:"d" env:"PHYLOTEXT_DIR" default:"." help:"Data directory for artifacts, pages and caches"`
	Config  string `short:"c" type:"path" help:"Clade window and name policy YAML (default: built-in)"`
	Verbose bool   `short:"v" help:"Log debug output"`

	Parse   ParseCmd   `cmd:"" help:"Extract families and clades from a taxonomy browser dump"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch the article of every family"`
	Prep    PrepCmd    `cmd:"" help:"Strip boilerplate from fetched articles"`
	Analyze AnalyzeCmd `cmd:"" help:"Embed, cluster and evaluate the corpus against the clades"`
	Show    ShowCmd    `cmd:"" name:"config" help:"Print the effective configuration"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Source string `arg:"" type:"existingfile" help:"Taxonomy browser HTML dump"`
	Force  bool   `short:"f" help:"Replace an index table that lists different families"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Refetch     bool          `help:"Fetch families that already have a page"`
	Concurrency int           `short:"j" default:"1" help:"Families fetched in parallel"`
	Interval    time.Duration `default:"500ms" help:"Minimum delay between requests to one host"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Extractor   string        `enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor (${enum})"`
	BaseURL     string        `name:"base-url" default:"https://en.wikipedia.org/w/index.php" help:"Article endpoint"`
}

// PrepCmd is the "prep" subcommand.
type PrepCmd struct{}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	K          int    `short:"k" help:"Number of clusters (default: number of clades)"`
	Embedder   string `short:"e" enum:"hashing,gemini" default:"hashing" help:"Document embedder (${enum})"`
	Model      string `help:"Embedding model for hosted embedders"`
	Dimensions int    `help:"Embedding dimensions (default: embedder default)"`
	Method     string `enum:"tfidf,tf" default:"tfidf" help:"Term weighting of the hashing embedder"`
	Metric     string `enum:"cosine,euclidean" default:"cosine" help:"Clustering distance (${enum})"`
	Repeats    int    `default:"25" help:"K-means restarts; the tightest partition wins"`
	NoCache    bool   `name:"no-cache" help:"Recompute embeddings and clusters"`
	APIKey     string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
}

// ShowCmd is the "config" subcommand.
type ShowCmd struct{}
