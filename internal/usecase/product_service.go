package usecase

import (
	"context"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopscout/backend/internal/domain"
)

// FieldExtractor turns a fetched listing page into a product record.
type FieldExtractor interface {
	Extract(doc *goquery.Document, pageURL string) (domain.ProductRecord, error)
}

// ProductServiceConfig holds configuration for the product service.
type ProductServiceConfig struct {
	// CacheTTL bounds how long a successfully scraped record is reused.
	CacheTTL time.Duration
}

// ProductService orchestrates the scrape, ask-question and compare-products
// operations over the fetcher, extractor, searcher and text generator.
type ProductService struct {
	fetcher   PageFetcher
	extractor FieldExtractor
	searcher  *Searcher
	generator domain.TextGenerator
	cache     domain.ProductCache
	cacheTTL  time.Duration
}

// NewProductService creates a product service. cache may be nil, in which
// case every scrape request hits the origin site.
func NewProductService(
	fetcher PageFetcher,
	extractor FieldExtractor,
	searcher *Searcher,
	generator domain.TextGenerator,
	cache domain.ProductCache,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	return &ProductService{
		fetcher:   fetcher,
		extractor: extractor,
		searcher:  searcher,
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// ScrapeProduct fetches a listing page and extracts its fields.
// A transport failure is returned wrapping domain.ErrFetchFailed; a failure
// inside extraction wraps domain.ErrExtractionFailed so the handler can
// report it as a data-shaped error instead of an HTTP one.
func (s *ProductService) ScrapeProduct(ctx context.Context, pageURL string) (*domain.ProductRecord, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, pageURL); err == nil && cached != nil {
			log.Printf("[Scraper] cache hit for %s", pageURL)
			return cached, nil
		}
	}

	doc, err := s.fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	record, err := s.extractor.Extract(doc, pageURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, pageURL, &record, s.cacheTTL); err != nil {
			log.Printf("[Scraper] cache store failed for %s: %v", pageURL, err)
		}
	}

	return &record, nil
}

// AskQuestion answers a free-form question about a product by forwarding
// the product context and the question to the language model.
func (s *ProductService) AskQuestion(ctx context.Context, product domain.ProductRecord, question string) (string, error) {
	prompt := BuildQuestionPrompt(product, question)
	return s.generator.GenerateText(ctx, prompt)
}

// CompareProducts searches regional platforms for comparable listings and
// asks the language model for a comparison. When nothing was found the
// model is not consulted and a fixed message is returned instead.
func (s *ProductService) CompareProducts(ctx context.Context, product domain.ProductRecord) (*domain.ComparisonResult, error) {
	similar := s.searcher.FindSimilar(ctx, product.Title, product.URL)

	if len(similar) == 0 {
		return &domain.ComparisonResult{
			Comparison:      domain.NoSimilarProductsMessage,
			SimilarProducts: []domain.SimilarProduct{},
		}, nil
	}

	region := DetectRegion(product.URL)
	prompt := BuildComparisonPrompt(product, region, similar)

	comparison, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &domain.ComparisonResult{
		Comparison:      comparison,
		SimilarProducts: similar,
	}, nil
}
