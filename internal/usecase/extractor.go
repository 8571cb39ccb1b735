package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopscout/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	decimalPattern    = regexp.MustCompile(`\d+\.?\d*`)
	ratingTextPattern = regexp.MustCompile(`\d+\.?\d*\s*(?:stars?|rating|/5)`)
)

const (
	maxReviews            = 5
	minReviewLength       = 10
	maxDescriptionLength  = 500
	amazonReviewsSelector = `[data-hook="review-body"] span, .review-text`
)

// extractRule is one step of a field's selector cascade. The cascade stops
// at the first rule whose selector matches an element and whose accept hook,
// if any, passes; transform then rewrites the matched text.
type extractRule struct {
	selector  string
	accept    func(text string) bool
	transform func(text string) string
}

func nonEmpty(text string) bool { return text != "" }

func hasCurrencySymbol(text string) bool {
	return strings.ContainsAny(text, "$€£₹")
}

// firstDecimal pulls the first integer or decimal substring out of text,
// e.g. "4.5 out of 5 stars" -> "4.5".
func firstDecimal(text string) string {
	return decimalPattern.FindString(text)
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

var amazonTitleRules = []extractRule{
	{selector: "#productTitle"},
	{selector: ".product-title"},
	{selector: `h1[data-automation-id="product-title"]`},
}

var amazonPriceRules = []extractRule{
	{selector: ".a-price-whole"},
	{selector: ".a-price .a-offscreen"},
	{selector: `[data-automation-id="product-price"]`},
	{selector: ".price-current"},
}

var amazonRatingRules = []extractRule{
	{selector: ".a-icon-alt", transform: firstDecimal},
	{selector: `[data-hook="average-star-rating"]`, transform: firstDecimal},
	{selector: ".rating-score", transform: firstDecimal},
}

var amazonDescriptionRules = []extractRule{
	{selector: "#feature-bullets ul"},
	{selector: ".product-description"},
	{selector: ".product-features"},
}

var genericTitleRules = []extractRule{
	{selector: "h1", accept: nonEmpty},
	{selector: ".product-title", accept: nonEmpty},
	{selector: ".product-name", accept: nonEmpty},
	{selector: `[itemprop="name"]`, accept: nonEmpty},
	{selector: "title", accept: nonEmpty},
}

var genericPriceRules = []extractRule{
	{selector: ".price", accept: hasCurrencySymbol},
	{selector: ".product-price", accept: hasCurrencySymbol},
	{selector: `[itemprop="price"]`, accept: hasCurrencySymbol},
	{selector: ".cost", accept: hasCurrencySymbol},
	{selector: ".amount", accept: hasCurrencySymbol},
}

var genericDescriptionRules = []extractRule{
	{selector: ".product-description"},
	{selector: ".description"},
	{selector: `[itemprop="description"]`},
	{selector: ".product-details"},
}

// Extractor turns a parsed listing page into a ProductRecord by applying
// per-site selector cascades. Fields are extracted independently; a field
// no cascade rule can fill resolves to its sentinel value.
type Extractor struct{}

var _ FieldExtractor = (*Extractor)(nil)

// NewExtractor creates a field extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds a ProductRecord from doc. The Amazon strategy is used when
// "amazon." appears in the lowercased URL, the generic strategy otherwise.
// Any panic raised while applying selectors is converted into an error; the
// caller surfaces it as a data-shaped {"error": ...} payload.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) (record domain.ProductRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrExtractionFailed, r)
		}
	}()

	if strings.Contains(strings.ToLower(pageURL), "amazon.") {
		return e.extractAmazon(doc, pageURL), nil
	}
	return e.extractGeneric(doc, pageURL), nil
}

func (e *Extractor) extractAmazon(doc *goquery.Document, pageURL string) domain.ProductRecord {
	return domain.ProductRecord{
		Title:       applyCascade(doc, amazonTitleRules, domain.SentinelTitle),
		Price:       applyCascade(doc, amazonPriceRules, domain.SentinelPrice),
		Rating:      applyCascade(doc, amazonRatingRules, domain.SentinelRating),
		Description: applyCascade(doc, amazonDescriptionRules, domain.SentinelDescription),
		Reviews:     extractReviews(doc),
		URL:         pageURL,
		Source:      domain.SourceAmazon,
	}
}

func (e *Extractor) extractGeneric(doc *goquery.Document, pageURL string) domain.ProductRecord {
	description := applyCascade(doc, genericDescriptionRules, "")
	if description == "" {
		description = domain.SentinelDescription
	} else {
		description = truncateRunes(description, maxDescriptionLength)
	}

	return domain.ProductRecord{
		Title:       applyCascade(doc, genericTitleRules, domain.SentinelGenericTitle),
		Price:       applyCascade(doc, genericPriceRules, domain.SentinelPrice),
		Rating:      scanRatingText(doc),
		Description: description,
		Reviews:     []string{},
		URL:         pageURL,
		Source:      domain.SourceGeneric,
	}
}

// applyCascade evaluates rules in order against doc and returns the first
// accepted match, transformed. An accepted match that ends up empty still
// terminates the cascade and resolves to the sentinel, matching the
// stop-at-first-hit behavior of each per-field chain.
func applyCascade(doc *goquery.Document, rules []extractRule, sentinel string) string {
	for _, rule := range rules {
		sel := doc.Find(rule.selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if rule.accept != nil && !rule.accept(text) {
			continue
		}
		if rule.transform != nil {
			text = rule.transform(text)
		}
		if text == "" {
			return sentinel
		}
		return text
	}
	return sentinel
}

// extractReviews collects up to maxReviews review snippets, dropping any
// whose trimmed text is too short to be useful.
func extractReviews(doc *goquery.Document) []string {
	reviews := []string{}
	doc.Find(amazonReviewsSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxReviews {
			return false
		}
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) > minReviewLength {
			reviews = append(reviews, text)
		}
		return true
	})
	return reviews
}

// scanRatingText looks for a rating mention ("4.5 stars", "4 rating",
// "4.7/5") in the document's text nodes, in document order, and returns the
// first number found in the matching node. Generic pages rarely mark up
// ratings consistently enough for a selector cascade.
func scanRatingText(doc *goquery.Document) string {
	rating := domain.SentinelRating
	doc.Find("*").Contents().EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if goquery.NodeName(sel) != "#text" {
			return true
		}
		text := sel.Text()
		if !ratingTextPattern.MatchString(text) {
			return true
		}
		if number := decimalPattern.FindString(text); number != "" {
			rating = number
			return false
		}
		return true
	})
	return rating
}
