package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/phylotext"
	"github.com/fwojciec/phylotext/goquery"
)

// DefaultBaseURL is the page endpoint articles are requested from.
const DefaultBaseURL = "https://en.wikipedia.org/w/index.php"

var _ phylotext.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher retrieves a family's article page and reduces it to
// markdown text.
type ContentFetcher struct {
	Fetcher     phylotext.Fetcher
	Extractor   phylotext.Extractor
	Converter   phylotext.Converter
	RateLimiter phylotext.HostLimiter

	// RetryDelays defaults to DefaultRetryDelays when nil.
	RetryDelays []time.Duration

	// BaseURL defaults to DefaultBaseURL when empty.
	BaseURL string

	// OnRetry, if set, is called before every retried request.
	OnRetry func(family string, attempt int, err error)
}

// ArticleURL returns the URL of a family's article. Redirects are not
// followed so that renamed taxa are reported instead of silently merged.
func (f *ContentFetcher) ArticleURL(family string) string {
	base := f.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "?title=" + url.QueryEscape(family) + "&redirect=no"
}

// FetchContent fetches, checks, cleans, extracts and converts the article of
// a family. Every failure other than cancellation is reported as EFETCH.
func (f *ContentFetcher) FetchContent(ctx context.Context, family string) (string, error) {
	content, err := f.fetchContent(ctx, family)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if phylotext.ErrorCode(err) == phylotext.EFETCH {
			return "", err
		}
		return "", phylotext.Errorf(phylotext.EFETCH, "%s", phylotext.ErrorMessage(err))
	}
	return content, nil
}

func (f *ContentFetcher) fetchContent(ctx context.Context, family string) (string, error) {
	articleURL := f.ArticleURL(family)
	u, err := url.Parse(articleURL)
	if err != nil {
		return "", fmt.Errorf("invalid article URL: %w", err)
	}

	delays := f.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	var onRetry RetryFunc
	if f.OnRetry != nil {
		onRetry = func(attempt int, err error) { f.OnRetry(family, attempt, err) }
	}

	html, err := Retry(ctx, delays, func(ctx context.Context) (string, error) {
		if f.RateLimiter != nil {
			if err := f.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return f.Fetcher.Fetch(ctx, articleURL)
	}, onRetry)
	if err != nil {
		return "", err
	}

	if err := goquery.CheckArticle(html); err != nil {
		return "", err
	}

	cleaned, err := goquery.CleanArticle(html)
	if err != nil {
		return "", err
	}

	extracted, err := f.Extractor.Extract(cleaned)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	if strings.TrimSpace(extracted.ContentHTML) == "" {
		return "", phylotext.Errorf(phylotext.EFETCH, "article has no content")
	}

	markdown, err := f.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return markdown, nil
}
