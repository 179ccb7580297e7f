package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/analyze"
	"github.com/fwojciec/phylotext/crawl"
	"github.com/fwojciec/phylotext/fs"
	"github.com/fwojciec/phylotext/gemini"
	"github.com/fwojciec/phylotext/htmltomarkdown"
	phttp "github.com/fwojciec/phylotext/http"
	"github.com/fwojciec/phylotext/kmeans"
	"github.com/fwojciec/phylotext/readability"
	pslog "github.com/fwojciec/phylotext/slog"
	"github.com/fwojciec/phylotext/sqlite"
	"github.com/fwojciec/phylotext/trafilatura"
	"github.com/fwojciec/phylotext/xxhash"
	"github.com/fwojciec/phylotext/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", phylotext.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the embedding and assignment caches.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the ones Run
	// would build.
	ContentFetcher phylotext.ContentFetcher
	Embedder       phylotext.Embedder
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("phylotext"),
		kong.Description("Test whether text clustering recovers the clades of a taxonomy"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'phylotext --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := yaml.LoadConfigFile(cli.Config)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Config:    cfg,
		Dir:       cli.Dir,
		Artifacts: fs.NewArtifacts(cli.Dir),
	}

	switch strings.Fields(kongCtx.Command())[0] {
	case "fetch":
		fetcher, closeFn := m.contentFetcher(&cli.Fetch, logger)
		defer closeFn()
		deps.ContentFetcher = fetcher

	case "analyze":
		embedder, err := m.embedder(ctx, &cli.Analyze)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cli.Dir, 0755); err != nil {
			return err
		}
		m.DB = sqlite.NewDB(filepath.Join(cli.Dir, CacheFile))
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache at %q: %w", filepath.Join(cli.Dir, CacheFile), err)
		}
		defer m.Close()

		deps.Analyzer = &analyze.Analyzer{
			Embedder:    pslog.NewLoggingEmbedder(embedder, logger),
			Clusterer:   pslog.NewLoggingClusterer(kmeans.NewClusterer(), logger),
			Embeddings:  sqlite.NewEmbeddingCache(m.DB),
			Assignments: sqlite.NewAssignmentCache(m.DB),
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

// contentFetcher builds the article retrieval chain for the fetch command.
func (m *Main) contentFetcher(cmd *FetchCmd, logger *slog.Logger) (phylotext.ContentFetcher, func()) {
	if m.ContentFetcher != nil {
		return m.ContentFetcher, func() {}
	}

	httpFetcher := phttp.NewFetcher(phttp.WithTimeout(cmd.Timeout))

	var extractor phylotext.Extractor = trafilatura.NewExtractor()
	if cmd.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}

	fetcher := &crawl.ContentFetcher{
		Fetcher:     pslog.NewLoggingFetcher(httpFetcher, logger),
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		RateLimiter: crawl.NewHostLimiter(cmd.Interval),
		BaseURL:     cmd.BaseURL,
		OnRetry: func(family string, attempt int, err error) {
			logger.Warn("retrying", "family", family, "attempt", attempt, "err", err)
		},
	}
	return pslog.NewLoggingContentFetcher(fetcher, logger), func() { _ = httpFetcher.Close() }
}

// embedder builds the embedder selected for the analyze command.
func (m *Main) embedder(ctx context.Context, cmd *AnalyzeCmd) (phylotext.Embedder, error) {
	if m.Embedder != nil {
		return m.Embedder, nil
	}

	switch cmd.Embedder {
	case "gemini":
		if cmd.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cmd.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		counter, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		return gemini.NewEmbedder(client.Models, counter), nil
	default:
		return xxhash.NewEmbedder(), nil
	}
}

// newLogger writes text logs to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
