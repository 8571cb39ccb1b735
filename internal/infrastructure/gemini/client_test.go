package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://example.com/v1beta/", "gemini-2.5-flash", 45*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://example.com/v1beta", client.baseURL, "trailing slash trimmed")
	assert.Equal(t, "gemini-2.5-flash", client.model)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestGenerateText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "what is this product?", req.Contents[0].Parts[0].Text)

		resp := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Role: "model", Parts: []part{{Text: "It is a smart speaker."}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gemini-2.5-flash", 5*time.Second)
	text, err := client.GenerateText(context.Background(), "what is this product?")

	require.NoError(t, err)
	assert.Equal(t, "It is a smart speaker.", text)
}

func TestGenerateText_MultiPartCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := generateContentResponse{
			Candidates: []candidate{
				{Content: content{Parts: []part{{Text: "First half. "}, {Text: "Second half."}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("k", server.URL, "gemini-2.5-flash", 5*time.Second)
	text, err := client.GenerateText(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "First half. Second half.", text)
}

func TestGenerateText_APIError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer server.Close()

			client := NewClient("k", server.URL, "gemini-2.5-flash", 5*time.Second)
			_, err := client.GenerateText(context.Background(), "prompt")

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrGeminiAPIFailure))
		})
	}
}

func TestGenerateText_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateContentResponse{})
	}))
	defer server.Close()

	client := NewClient("k", server.URL, "gemini-2.5-flash", 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyCompletion))
}

func TestGenerateText_EmptyParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := generateContentResponse{Candidates: []candidate{{Content: content{Parts: []part{{Text: ""}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("k", server.URL, "gemini-2.5-flash", 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyCompletion))
}

func TestGenerateText_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	client := NewClient("k", server.URL, "gemini-2.5-flash", time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGeminiAPIFailure))
}

func TestGenerateText_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient("k", server.URL, "gemini-2.5-flash", 5*time.Second)
	_, err := client.GenerateText(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
