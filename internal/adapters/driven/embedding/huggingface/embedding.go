// Package huggingface provides an embedding service adapter using the
// Hugging Face inference API.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://router.huggingface.co/hf-inference/models"
	DefaultModel      = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultDimensions = 384
	DefaultTimeout    = 60 * time.Second
)

// Config holds configuration for the Hugging Face embedding service.
type Config struct {
	// APIKey is the Hugging Face API key (required).
	APIKey string

	// BaseURL is the inference API base URL.
	BaseURL string

	// Model is the sentence-transformer model to use.
	Model string

	// Dimensions is the embedding vector size (default: 384).
	Dimensions int

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// EmbeddingService generates embeddings using the Hugging Face
// inference API. It makes one request per text and performs no
// retries; callers throttle and treat failures as degradation.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// embeddingRequest is the inference API request format.
type embeddingRequest struct {
	Inputs  string           `json:"inputs"`
	Options embeddingOptions `json:"options"`
}

// embeddingOptions asks the API to block until the model is loaded
// instead of returning a 503.
type embeddingOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// NewEmbeddingService creates a new Hugging Face embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Inputs:  text,
		Options: embeddingOptions{WaitForModel: true},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/"+s.model,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(body))
	}

	return normalizeEmbedding(body)
}

// normalizeEmbedding decodes the response vector. The API may return a
// flat vector or a batch-wrapped one; exactly one level of nesting is
// unwrapped when the first element is itself a sequence.
func normalizeEmbedding(body []byte) ([]float32, error) {
	var nested [][]float32
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("huggingface: empty embedding returned")
		}
		return nested[0], nil
	}

	var flat []float32
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("huggingface: empty embedding returned")
	}
	return flat, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}
