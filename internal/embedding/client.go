// Package embedding converts text into fixed-dimension vectors using
// OpenAI's embedding API.
package embedding

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
)

const (
	// EmbeddingModel is the OpenAI model used for generating embeddings.
	EmbeddingModel = "text-embedding-3-small"

	// EmbeddingDimension is the vector size requested from the model.
	// This matches storage.VectorDimension (768).
	EmbeddingDimension = 768
)

// Service is a handle to an embedding backend. The production
// implementation is Client; tests substitute a fake.
type Service interface {
	// Embed converts a single text into an EmbeddingDimension-length vector.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client implements Service against the OpenAI embeddings endpoint.
type Client struct {
	client *openai.Client
}

// NewClient creates an OpenAI-backed embedding service.
// It reads OPENAI_API_KEY from the environment and returns an error if not set.
func NewClient() (*Client, error) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	// openai-go automatically reads OPENAI_API_KEY from environment
	client := openai.NewClient()

	return &Client{client: &client}, nil
}

// Embed requests a single embedding from the OpenAI API.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model:      EmbeddingModel,
		Dimensions: openai.Int(EmbeddingDimension),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	return toFloat32(resp.Data[0].Embedding), nil
}

// toFloat32 converts []float64 to []float32.
// The OpenAI API returns float64, but storage uses float32 for memory efficiency.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
