package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/panjf2000/ants/v2"
)

const (
	// GroupSize is the number of texts embedded concurrently per group.
	GroupSize = 5

	// groupPause is the fixed delay between groups, keeping request bursts
	// under the embedding service's rate limits.
	groupPause = 100 * time.Millisecond
)

// Result pairs a generated embedding with its source text.
type Result struct {
	Embedding []float32
	Text      string
}

// Embedder generates embeddings for one or many texts. The batch path
// processes texts in groups of GroupSize: texts within a group are embedded
// concurrently on a worker pool, groups run sequentially with a pacing
// delay between them. Individual calls retry with exponential backoff on
// rate limit errors; any other failure fails the whole batch.
type Embedder struct {
	service Service
	pool    *ants.Pool
}

// NewEmbedder creates an Embedder backed by the given service handle.
// The handle is injected rather than read from ambient configuration so
// the embedder stays testable with a mock service.
func NewEmbedder(service Service) (*Embedder, error) {
	pool, err := ants.NewPool(GroupSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Embedder{
		service: service,
		pool:    pool,
	}, nil
}

// Close releases the embedder's worker pool.
func (e *Embedder) Close() {
	e.pool.Release()
}

// GenerateEmbedding generates an embedding for a single text.
func (e *Embedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedWithRetry(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	return vector, nil
}

// GenerateEmbeddings generates embeddings for all texts, preserving input
// order in the output. There is no partial-success mode: if any text in any
// group fails, the whole call fails and the caller must retry the batch.
func (e *Embedder) GenerateEmbeddings(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))

	for start := 0; start < len(texts); start += GroupSize {
		end := min(start+GroupSize, len(texts))

		var wg sync.WaitGroup
		errs := make([]error, end-start)

		for i := start; i < end; i++ {
			wg.Add(1)
			slot := i
			if submitErr := e.pool.Submit(func() {
				defer wg.Done()
				vector, err := e.embedWithRetry(ctx, texts[slot])
				if err != nil {
					errs[slot-start] = err
					return
				}
				results[slot] = Result{Embedding: vector, Text: texts[slot]}
			}); submitErr != nil {
				wg.Done()
				errs[slot-start] = submitErr
			}
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("failed to generate embeddings: %w", err)
			}
		}

		// Pace between groups to respect external rate limits.
		if end < len(texts) {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("failed to generate embeddings: %w", ctx.Err())
			case <-time.After(groupPause):
			}
		}
	}

	return results, nil
}

// embedWithRetry performs a single embedding call with retry on rate limit
// errors (HTTP 429). Other errors are permanent and fail immediately.
func (e *Embedder) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	operation := func() error {
		v, err := e.service.Embed(ctx, text)
		if err != nil {
			if isRateLimitError(err) {
				return err // Will retry with backoff
			}
			return backoff.Permanent(err) // Don't retry
		}
		vector = v
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return vector, nil
}

// isRateLimitError checks if the error is a rate limit error (HTTP 429).
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
