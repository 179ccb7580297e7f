package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/crawl"
	"github.com/fwojciec/phylotext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><body><div id="mw-content-text"><p>Bears are mammals.</p></div></body></html>`

func newContentFetcher(fetch func(ctx context.Context, url string) (string, error)) *crawl.ContentFetcher {
	return &crawl.ContentFetcher{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*phylotext.ExtractResult, error) {
				return &phylotext.ExtractResult{Title: "Bear", ContentHTML: "<p>Bears are mammals.</p>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "Bears are mammals.", nil
			},
		},
		RetryDelays: []time.Duration{0, 0, 0},
		BaseURL:     "https://en.wikipedia.org/w/index.php",
	}
}

func TestContentFetcher_ArticleURL(t *testing.T) {
	t.Parallel()

	t.Run("disables redirects and escapes the title", func(t *testing.T) {
		t.Parallel()

		f := &crawl.ContentFetcher{}

		assert.Equal(t,
			"https://en.wikipedia.org/w/index.php?title=Crane+%28bird%29&redirect=no",
			f.ArticleURL("Crane (bird)"))
	})
}

func TestContentFetcher_FetchContent(t *testing.T) {
	t.Parallel()

	t.Run("returns converted article text", func(t *testing.T) {
		t.Parallel()

		// Given an article page
		var requested string
		f := newContentFetcher(func(_ context.Context, url string) (string, error) {
			requested = url
			return articleHTML, nil
		})

		// When the content is fetched
		content, err := f.FetchContent(context.Background(), "Bear")

		// Then the markdown text comes back
		require.NoError(t, err)
		assert.Equal(t, "Bears are mammals.", content)
		assert.Equal(t, "https://en.wikipedia.org/w/index.php?title=Bear&redirect=no", requested)
	})

	t.Run("waits on the host limiter before every request", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		calls := 0
		f := newContentFetcher(func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("connection reset")
			}
			return articleHTML, nil
		})
		f.RateLimiter = &mock.HostLimiter{
			WaitFn: func(_ context.Context, host string) error {
				hosts = append(hosts, host)
				return nil
			},
		}

		_, err := f.FetchContent(context.Background(), "Bear")

		require.NoError(t, err)
		assert.Equal(t, []string{"en.wikipedia.org", "en.wikipedia.org"}, hosts)
	})

	t.Run("reports retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		f := newContentFetcher(func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("HTTP 503")
			}
			return articleHTML, nil
		})
		var retried []int
		f.OnRetry = func(family string, attempt int, _ error) {
			assert.Equal(t, "Bear", family)
			retried = append(retried, attempt)
		}

		_, err := f.FetchContent(context.Background(), "Bear")

		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, retried)
	})

	t.Run("rejects disambiguation pages", func(t *testing.T) {
		t.Parallel()

		f := newContentFetcher(func(context.Context, string) (string, error) {
			return `<html><body><div id="disambigbox">may refer to</div></body></html>`, nil
		})

		_, err := f.FetchContent(context.Background(), "Crane")

		assert.Equal(t, phylotext.EFETCH, phylotext.ErrorCode(err))
		assert.Equal(t, "page is a disambiguation page", phylotext.ErrorMessage(err))
	})

	t.Run("rejects redirect pages", func(t *testing.T) {
		t.Parallel()

		f := newContentFetcher(func(context.Context, string) (string, error) {
			return `<html><body><div class="redirectMsg"><a href="/wiki/Ursidae">Ursidae</a></div></body></html>`, nil
		})

		_, err := f.FetchContent(context.Background(), "Bear")

		assert.Equal(t, phylotext.EFETCH, phylotext.ErrorCode(err))
		assert.Contains(t, phylotext.ErrorMessage(err), "Ursidae")
	})

	t.Run("wraps fetch failures as content failures", func(t *testing.T) {
		t.Parallel()

		f := newContentFetcher(func(context.Context, string) (string, error) {
			return "", phylotext.Errorf(phylotext.ENOTFOUND, "HTTP 404 for x")
		})

		_, err := f.FetchContent(context.Background(), "Bear")

		assert.Equal(t, phylotext.EFETCH, phylotext.ErrorCode(err))
		assert.Equal(t, "HTTP 404 for x", phylotext.ErrorMessage(err))
	})

	t.Run("rejects empty articles", func(t *testing.T) {
		t.Parallel()

		f := newContentFetcher(func(context.Context, string) (string, error) {
			return articleHTML, nil
		})
		f.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*phylotext.ExtractResult, error) {
				return &phylotext.ExtractResult{ContentHTML: "  "}, nil
			},
		}

		_, err := f.FetchContent(context.Background(), "Bear")

		assert.Equal(t, phylotext.EFETCH, phylotext.ErrorCode(err))
	})

	t.Run("wraps converter failures", func(t *testing.T) {
		t.Parallel()

		f := newContentFetcher(func(context.Context, string) (string, error) {
			return articleHTML, nil
		})
		f.Converter = &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("bad markup")
			},
		}

		_, err := f.FetchContent(context.Background(), "Bear")

		assert.Equal(t, phylotext.EFETCH, phylotext.ErrorCode(err))
		assert.Equal(t, "convert: bad markup", phylotext.ErrorMessage(err))
	})

	t.Run("passes cancellation through", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := newContentFetcher(func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		})

		_, err := f.FetchContent(ctx, "Bear")

		require.ErrorIs(t, err, context.Canceled)
	})
}
