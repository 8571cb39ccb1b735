package domain

import (
	"context"
	"time"
)

// TextGenerator defines the interface to the external text-completion
// service. The prompt goes in as one string; the completion comes back
// verbatim as one string.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ProductCache defines the interface for caching scraped product records.
type ProductCache interface {
	Get(ctx context.Context, key string) (*ProductRecord, error)
	Set(ctx context.Context, key string, record *ProductRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
