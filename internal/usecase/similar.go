package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopscout/backend/internal/domain"
)

// PageFetcher retrieves a URL and returns the parsed HTML document.
type PageFetcher interface {
	FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Package-level compiled regex patterns for performance
var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const maxQueryTokens = 5

// SearcherConfig holds configuration for the similar-product searcher.
type SearcherConfig struct {
	// PlatformDelay is the courtesy pause inserted after each platform,
	// applied whether or not the attempt succeeded.
	PlatformDelay time.Duration
	// MaxPerPlatform caps how many candidate listings one platform may
	// contribute.
	MaxPerPlatform int
}

// Searcher finds comparable listings on the competitor platforms registered
// for the origin URL's region. Per-platform failures are absorbed; the
// search itself never fails.
type Searcher struct {
	fetcher        PageFetcher
	platformDelay  time.Duration
	maxPerPlatform int
}

// NewSearcher creates a similar-product searcher.
func NewSearcher(fetcher PageFetcher, config SearcherConfig) *Searcher {
	maxPerPlatform := config.MaxPerPlatform
	if maxPerPlatform <= 0 {
		maxPerPlatform = 3
	}
	return &Searcher{
		fetcher:        fetcher,
		platformDelay:  config.PlatformDelay,
		maxPerPlatform: maxPerPlatform,
	}
}

// platformResult captures one platform's contribution to a search batch.
// A failed attempt carries err and contributes no items.
type platformResult struct {
	platform string
	items    []domain.SimilarProduct
	err      error
}

// FindSimilar searches each regional platform in order and accumulates the
// surviving candidates, platform order first, candidate order within.
func (s *Searcher) FindSimilar(ctx context.Context, title, originURL string) []domain.SimilarProduct {
	query := buildSearchQuery(title)
	region := DetectRegion(originURL)
	platforms := PlatformsFor(region)

	results := make([]platformResult, 0, len(platforms))
	for _, platform := range platforms {
		results = append(results, s.searchPlatform(ctx, platform, query))
		// Courtesy pause between platforms, success or failure.
		time.Sleep(s.platformDelay)
	}

	similar := []domain.SimilarProduct{}
	for _, result := range results {
		if result.err != nil {
			log.Printf("[Search] %s skipped: %v", result.platform, result.err)
			continue
		}
		similar = append(similar, result.items...)
	}
	return similar
}

func (s *Searcher) searchPlatform(ctx context.Context, platform Platform, query string) platformResult {
	searchURL := platform.BuildSearchURL(query)

	doc, err := s.fetcher.FetchDocument(ctx, searchURL)
	if err != nil {
		return platformResult{platform: platform.Name, err: err}
	}

	var items []domain.SimilarProduct
	doc.Find(platform.Selectors.Products).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= s.maxPerPlatform {
			return false
		}

		titleSel := card.Find(platform.Selectors.Title).First()
		linkSel := card.Find(platform.Selectors.Link).First()
		if titleSel.Length() == 0 || linkSel.Length() == 0 {
			// Malformed candidate, drop it.
			return true
		}

		price := domain.SentinelSimilarPrice
		if priceSel := card.Find(platform.Selectors.Price).First(); priceSel.Length() > 0 {
			price = strings.TrimSpace(priceSel.Text())
		}

		href, _ := linkSel.Attr("href")
		items = append(items, domain.SimilarProduct{
			Title:    strings.TrimSpace(titleSel.Text()),
			Price:    price,
			URL:      platform.AbsoluteLink(href),
			Platform: platform.Name,
		})
		return true
	})

	return platformResult{platform: platform.Name, items: items}
}

// buildSearchQuery reduces a product title to a short search query:
// punctuation stripped, whitespace collapsed, first five tokens kept.
func buildSearchQuery(title string) string {
	cleaned := nonWordPattern.ReplaceAllString(title, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	tokens := strings.Fields(strings.TrimSpace(cleaned))
	if len(tokens) > maxQueryTokens {
		tokens = tokens[:maxQueryTokens]
	}
	return strings.Join(tokens, " ")
}
