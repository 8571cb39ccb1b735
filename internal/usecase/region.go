package usecase

import "strings"

// DefaultRegion is used when no table entry matches the URL.
const DefaultRegion = "US"

type regionEntry struct {
	domain string
	region string
}

// regionTable maps domain substrings to marketplace regions. Matching is a
// first-hit substring scan, so entries whose domain contains another entry
// (amazon.com.au vs amazon.com, amazon.co.uk vs amazon.com) must be listed
// before the shorter one.
var regionTable = []regionEntry{
	{"amazon.com.au", "AU"},
	{"amazon.com.br", "BR"},
	{"amazon.com.mx", "MX"},
	{"amazon.com.tr", "TR"},
	{"amazon.co.uk", "UK"},
	{"amazon.co.jp", "JP"},
	{"amazon.com", "US"},
	{"amazon.de", "DE"},
	{"amazon.fr", "FR"},
	{"amazon.it", "IT"},
	{"amazon.es", "ES"},
	{"amazon.ca", "CA"},
	{"amazon.in", "IN"},
	{"amazon.sa", "SA"},
	{"amazon.ae", "AE"},
	{"amazon.eg", "EG"},
	{"amazon.sg", "SG"},

	{"noon.com", "AE"},
	{"jumia.com.eg", "EG"},
	{"jumia.co.ke", "KE"},
	{"jumia.com.ng", "NG"},
	{"flipkart.com", "IN"},
	{"souq.com", "AE"},
	{"carrefour.com", "FR"},
	{"walmart.com", "US"},
	{"target.com", "US"},
	{"bestbuy.com", "US"},
	{"currys.co.uk", "UK"},
	{"mediamarkt.de", "DE"},
	{"fnac.com", "FR"},
	{"rakuten.co.jp", "JP"},
	{"taobao.com", "CN"},
	{"tmall.com", "CN"},
}

// DetectRegion maps a listing URL to a coarse marketplace region code.
// Any string is accepted; input that matches no table entry resolves to
// DefaultRegion.
func DetectRegion(rawURL string) string {
	lowered := strings.ToLower(rawURL)
	for _, entry := range regionTable {
		if strings.Contains(lowered, entry.domain) {
			return entry.region
		}
	}
	return DefaultRegion
}
