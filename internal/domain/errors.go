package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrFetchFailed is returned when a product page cannot be retrieved
	ErrFetchFailed = errors.New("failed to fetch page")

	// ErrExtractionFailed is returned when selector application blows up
	// on an otherwise retrieved document
	ErrExtractionFailed = errors.New("product extraction failed")

	// ErrGeminiAPIFailure is returned when the Gemini API request fails
	ErrGeminiAPIFailure = errors.New("gemini API request failed")

	// ErrEmptyCompletion is returned when Gemini answers with no candidates
	ErrEmptyCompletion = errors.New("gemini returned no completion text")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
