package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopscout/backend/internal/domain"
)

// stubFetcher serves canned documents keyed by URL and records call order.
type stubFetcher struct {
	pages map[string]string
	fail  map[string]error
	calls []string
}

func (f *stubFetcher) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	f.calls = append(f.calls, pageURL)
	if err, ok := f.fail[pageURL]; ok {
		return nil, err
	}
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, errors.New("no canned page for " + pageURL)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func newTestSearcher(fetcher PageFetcher) *Searcher {
	return NewSearcher(fetcher, SearcherConfig{PlatformDelay: 0, MaxPerPlatform: 3})
}

const amazonEGSearchHTML = `<html><body>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B001"><span>Echo Dot 5th Gen</span></a></h2>
  <span class="a-price-whole">2499</span>
</div>
<div data-component-type="s-search-result">
  <h2><a href="https://www.amazon.eg/dp/B002"><span>Echo Pop</span></a></h2>
</div>
<div data-component-type="s-search-result">
  <p>sponsored tile without title or link</p>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B004"><span>Beyond the cap</span></a></h2>
</div>
</body></html>`

func TestFindSimilarAcrossPlatforms(t *testing.T) {
	platforms := PlatformsFor("EG")
	query := "Echo Dot 5th Gen Smart"

	fetcher := &stubFetcher{
		pages: map[string]string{
			platforms[0].BuildSearchURL(query): amazonEGSearchHTML,
			platforms[2].BuildSearchURL(query): "<html><body><p>no products</p></body></html>",
		},
		fail: map[string]error{
			platforms[1].BuildSearchURL(query): errors.New("connection refused"),
		},
	}

	s := newTestSearcher(fetcher)
	got := s.FindSimilar(context.Background(), "Echo Dot (5th Gen) Smart Speaker", "https://www.amazon.eg/dp/B09")

	// Noon failed and Jumia was empty; only Amazon contributes, and only the
	// first three candidates are considered, one of which is malformed.
	want := []domain.SimilarProduct{
		{
			Title:    "Echo Dot 5th Gen",
			Price:    "2499",
			URL:      "https://www.amazon.eg/dp/B001",
			Platform: "Amazon Egypt",
		},
		{
			Title:    "Echo Pop",
			Price:    domain.SentinelSimilarPrice,
			URL:      "https://www.amazon.eg/dp/B002",
			Platform: "Amazon Egypt",
		},
	}

	if len(got) != len(want) {
		t.Fatalf("FindSimilar returned %d items, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindSimilarVisitsPlatformsInOrder(t *testing.T) {
	fetcher := &stubFetcher{fail: map[string]error{}, pages: map[string]string{}}
	s := newTestSearcher(fetcher)

	s.FindSimilar(context.Background(), "mechanical keyboard", "https://www.amazon.co.uk/dp/B0")

	platforms := PlatformsFor("UK")
	if len(fetcher.calls) != len(platforms) {
		t.Fatalf("fetched %d URLs, want %d", len(fetcher.calls), len(platforms))
	}
	for i, p := range platforms {
		want := p.BuildSearchURL("mechanical keyboard")
		if fetcher.calls[i] != want {
			t.Errorf("call %d = %q, want %q", i, fetcher.calls[i], want)
		}
	}
}

// A platform failure must not abort the batch; later platforms still run.
func TestFindSimilarIsolatesPlatformFailures(t *testing.T) {
	platforms := PlatformsFor("UK")
	query := "mechanical keyboard"

	fetcher := &stubFetcher{
		fail: map[string]error{
			platforms[0].BuildSearchURL(query): errors.New("boom"),
		},
		pages: map[string]string{
			platforms[1].BuildSearchURL(query): `<html><body>
<div class="s-item">
  <span class="s-item__title">Keychron K2</span>
  <a class="s-item__link" href="/itm/42"></a>
  <span class="s-item__price">£59.99</span>
</div>
</body></html>`,
		},
	}

	s := newTestSearcher(fetcher)
	got := s.FindSimilar(context.Background(), query, "https://www.amazon.co.uk/dp/B0")

	if len(got) != 1 {
		t.Fatalf("FindSimilar returned %d items, want 1: %+v", len(got), got)
	}
	if got[0].Platform != "eBay UK" {
		t.Errorf("Platform = %q, want eBay UK", got[0].Platform)
	}
	if got[0].URL != "https://www.ebay.co.uk/itm/42" {
		t.Errorf("URL = %q", got[0].URL)
	}
}

// The search is total: any (title, url) pair yields a slice, never a panic
// or an error, even when every fetch fails.
func TestFindSimilarNeverFails(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		url   string
	}{
		{"empty title and url", "", ""},
		{"non-URL origin", "laptop", "not a url"},
		{"punctuation-only title", "!!! ***", "https://www.amazon.com/dp/B0"},
		{"unicode title", "Ürün Adı — çok iyi", "https://www.amazon.com.tr/dp/B0"},
	}

	fetcher := &stubFetcher{}
	s := newTestSearcher(fetcher)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.FindSimilar(context.Background(), tc.title, tc.url)
			if got == nil {
				t.Error("FindSimilar returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("FindSimilar = %+v, want empty", got)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "strips punctuation",
			title: "Echo Dot (5th Gen) | Smart Speaker",
			want:  "Echo Dot 5th Gen Smart",
		},
		{
			name:  "keeps at most five tokens",
			title: "one two three four five six seven",
			want:  "one two three four five",
		},
		{
			name:  "collapses whitespace",
			title: "wireless   mouse \t ergonomic",
			want:  "wireless mouse ergonomic",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			title: "!!!???",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildSearchQuery(tc.title); got != tc.want {
				t.Errorf("buildSearchQuery(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}
