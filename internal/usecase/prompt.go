package usecase

import (
	"fmt"
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

const maxPromptReviews = 3

// BuildQuestionPrompt serializes product context and the user's question
// into the prompt sent to the language model. Sentinel field values are
// embedded as-is; the question is passed through verbatim.
func BuildQuestionPrompt(product domain.ProductRecord, question string) string {
	reviews := product.Reviews
	if len(reviews) > maxPromptReviews {
		reviews = reviews[:maxPromptReviews]
	}

	return fmt.Sprintf(`Product Information:
Title: %s
Price: %s
Rating: %s
Description: %s
Reviews: %s

User Question: %s

Please provide a helpful and accurate answer based on the product information above.`,
		product.Title,
		product.Price,
		product.Rating,
		product.Description,
		strings.Join(reviews, " | "),
		question,
	)
}

// BuildComparisonPrompt serializes the original product, its region, and a
// numbered listing of every similar product into the comparison prompt.
func BuildComparisonPrompt(product domain.ProductRecord, region string, similar []domain.SimilarProduct) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Original Product:
Title: %s
Price: %s
Rating: %s
Source: %s
Region: %s

Similar Products Found in Same Region:
`,
		product.Title,
		product.Price,
		product.Rating,
		product.Source,
		region,
	)

	for i, item := range similar {
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, item.Title, item.Price, item.Platform)
	}

	b.WriteString(`
Please provide a detailed comparison analysis including:
1. Price comparison in the same regional currency
2. Which regional platforms have similar products
3. Recommendations based on regional availability and pricing
4. Any notable differences or similarities
5. Best value for money in this region`)

	return b.String()
}
