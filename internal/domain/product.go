package domain

// Sentinel values for fields that could not be extracted. Consumers compare
// against these literals; a field is never empty and never absent.
const (
	SentinelTitle        = "Title not found"
	SentinelGenericTitle = "Product title not found"
	SentinelPrice        = "Price not available"
	SentinelRating       = "Rating not available"
	SentinelDescription  = "Description not available"
	SentinelSimilarPrice = "N/A"
)

// Source labels attached to extracted records.
const (
	SourceAmazon  = "Amazon"
	SourceGeneric = "Generic Store"
)

// ProductRecord represents the structured fields extracted from one product
// listing page. Every field holds either real content or its sentinel.
type ProductRecord struct {
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Rating      string   `json:"rating"`
	Description string   `json:"description"`
	Reviews     []string `json:"reviews"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
}

// SimilarProduct is one comparable listing found on a competitor platform.
// URL is always absolute once populated.
type SimilarProduct struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

// ScrapeRequest is the body of POST /scrape-product.
type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// QuestionRequest is the body of POST /ask-question.
type QuestionRequest struct {
	ProductData ProductRecord `json:"product_data"`
	Question    string        `json:"question" binding:"required"`
}

// ComparisonRequest is the body of POST /compare-products.
type ComparisonRequest struct {
	ProductData ProductRecord `json:"product_data"`
}

// ComparisonResult bundles the comparison text with the listings it covers.
type ComparisonResult struct {
	Comparison      string           `json:"comparison"`
	SimilarProducts []SimilarProduct `json:"similar_products"`
}

// NoSimilarProductsMessage is returned as the comparison text when no
// listings were found; the language model is not consulted in that case.
const NoSimilarProductsMessage = "No similar products found on other platforms."
