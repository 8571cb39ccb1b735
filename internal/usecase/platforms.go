package usecase

import (
	"fmt"
	"net/url"
	"strings"
)

// PlatformSelectors holds the CSS selectors used to pull candidate listings
// off one platform's search-results page.
type PlatformSelectors struct {
	Products string
	Title    string
	Price    string
	Link     string
}

// Platform describes how to search and scrape one competitor site.
type Platform struct {
	Name      string
	SearchURL string // fmt template; %s is replaced by the escaped query
	Selectors PlatformSelectors
}

// BuildSearchURL renders the platform's search URL for a query.
func (p Platform) BuildSearchURL(query string) string {
	return fmt.Sprintf(p.SearchURL, url.QueryEscape(query))
}

// AbsoluteLink rewrites a relative href to an absolute URL. The prefix is
// chosen by the domain variant present in the platform's search URL, since
// Amazon and eBay operate several country domains. Already-absolute links
// and empty hrefs pass through unchanged.
func (p Platform) AbsoluteLink(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	switch {
	case strings.HasPrefix(p.Name, "Amazon"):
		for _, host := range []string{"amazon.eg", "amazon.ae", "amazon.sa", "amazon.in", "amazon.co.uk"} {
			if strings.Contains(p.SearchURL, host) {
				return "https://www." + host + href
			}
		}
		return "https://www.amazon.com" + href
	case strings.HasPrefix(p.Name, "eBay"):
		if strings.Contains(p.SearchURL, "ebay.co.uk") {
			return "https://www.ebay.co.uk" + href
		}
		return "https://www.ebay.com" + href
	case strings.Contains(p.SearchURL, "noon.com"):
		return "https://www.noon.com" + href
	case strings.Contains(p.SearchURL, "jumia.com"):
		return "https://www.jumia.com.eg" + href
	case strings.Contains(p.SearchURL, "flipkart.com"):
		return "https://www.flipkart.com" + href
	}
	return href
}

var amazonSearchSelectors = PlatformSelectors{
	Products: `[data-component-type="s-search-result"]`,
	Title:    "h2 a span",
	Price:    ".a-price-whole, .a-price .a-offscreen",
	Link:     "h2 a",
}

var noonSearchSelectors = PlatformSelectors{
	Products: ".productContainer",
	Title:    ".productTitle",
	Price:    ".currency, .price",
	Link:     "a",
}

var ebaySearchSelectors = PlatformSelectors{
	Products: ".s-item",
	Title:    ".s-item__title",
	Price:    ".s-item__price",
	Link:     ".s-item__link",
}

// platformRegistry maps a region code to its search platforms, in search
// priority order. Built once at startup, read-only afterwards.
var platformRegistry = map[string][]Platform{
	"EG": {
		{Name: "Amazon Egypt", SearchURL: "https://www.amazon.eg/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "Noon Egypt", SearchURL: "https://www.noon.com/egypt-en/search/?q=%s", Selectors: noonSearchSelectors},
		{Name: "Jumia Egypt", SearchURL: "https://www.jumia.com.eg/catalog/?q=%s", Selectors: PlatformSelectors{
			Products: ".prd",
			Title:    ".name",
			Price:    ".prc",
			Link:     "a",
		}},
	},
	"AE": {
		{Name: "Amazon UAE", SearchURL: "https://www.amazon.ae/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "Noon UAE", SearchURL: "https://www.noon.com/uae-en/search/?q=%s", Selectors: noonSearchSelectors},
	},
	"SA": {
		{Name: "Amazon Saudi", SearchURL: "https://www.amazon.sa/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "Noon Saudi", SearchURL: "https://www.noon.com/saudi-en/search/?q=%s", Selectors: noonSearchSelectors},
	},
	"IN": {
		{Name: "Amazon India", SearchURL: "https://www.amazon.in/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "Flipkart", SearchURL: "https://www.flipkart.com/search?q=%s", Selectors: PlatformSelectors{
			Products: "._1AtVbE",
			Title:    "._4rR01T",
			Price:    "._30jeq3",
			Link:     "a",
		}},
	},
	"US": {
		{Name: "Amazon US", SearchURL: "https://www.amazon.com/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "eBay", SearchURL: "https://www.ebay.com/sch/i.html?_nkw=%s", Selectors: ebaySearchSelectors},
		{Name: "Walmart", SearchURL: "https://www.walmart.com/search/?query=%s", Selectors: PlatformSelectors{
			Products: `[data-automation-id="product-title"]`,
			Title:    `[data-automation-id="product-title"]`,
			Price:    `[itemprop="price"]`,
			Link:     "a",
		}},
	},
	"UK": {
		{Name: "Amazon UK", SearchURL: "https://www.amazon.co.uk/s?k=%s", Selectors: amazonSearchSelectors},
		{Name: "eBay UK", SearchURL: "https://www.ebay.co.uk/sch/i.html?_nkw=%s", Selectors: ebaySearchSelectors},
	},
}

// PlatformsFor returns the search platforms for a region, falling back to
// the US list for regions without a registry entry.
func PlatformsFor(region string) []Platform {
	if platforms, ok := platformRegistry[region]; ok {
		return platforms
	}
	return platformRegistry[DefaultRegion]
}
