// Package rag retrieves relevant document chunks for a query and composes
// the grounded prompt pair handed to a generation step.
package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// Default retrieval parameters for the single-scope path.
const (
	DefaultTopK      = 5
	DefaultThreshold = 0.3
)

// Default retrieval parameters for the dual-document screening path.
const (
	DefaultScreeningTopK      = 3
	DefaultScreeningThreshold = 0.5
)

// Searcher is the similarity search dependency.
// *vectorstore.VectorStore implements it.
type Searcher interface {
	SearchSimilarChunks(ctx context.Context, query string, opts vectorstore.SearchOptions) ([]vectorstore.SearchResult, error)
}

// RetrievalOptions configures RetrieveContext. Values are taken as given;
// use DefaultRetrievalOptions for the standard configuration.
type RetrievalOptions struct {
	TopK        int // Defaults to DefaultTopK when <= 0
	Threshold   float64
	DocumentIDs []string
}

// DefaultRetrievalOptions returns the standard single-scope configuration.
func DefaultRetrievalOptions() RetrievalOptions {
	return RetrievalOptions{TopK: DefaultTopK, Threshold: DefaultThreshold}
}

// ScreeningOptions configures RetrieveResumeContext.
type ScreeningOptions struct {
	TopK      int // Per-document cap; defaults to DefaultScreeningTopK when <= 0
	Threshold float64
}

// DefaultScreeningOptions returns the standard dual-document configuration.
func DefaultScreeningOptions() ScreeningOptions {
	return ScreeningOptions{TopK: DefaultScreeningTopK, Threshold: DefaultScreeningThreshold}
}

// RetrievalResult is the outcome of a single-scope retrieval.
type RetrievalResult struct {
	Chunks []vectorstore.SearchResult
	Query  string
}

// ScreeningRetrievalResult is the outcome of the dual-document retrieval.
type ScreeningRetrievalResult struct {
	ResumeChunks         []vectorstore.SearchResult
	JobDescriptionChunks []vectorstore.SearchResult
	Query                string
}

// Retriever orchestrates vector store searches for queries.
type Retriever struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewRetriever creates a Retriever. A nil logger falls back to slog.Default.
func NewRetriever(searcher Searcher, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		searcher: searcher,
		logger:   logger.With("component", "retriever"),
	}
}

// RetrieveContext finds the chunks most relevant to the query, optionally
// scoped to a set of documents. Nothing clearing the threshold is not an
// error; the result simply has no chunks.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, opts RetrievalOptions) (*RetrievalResult, error) {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}

	chunks, err := r.searcher.SearchSimilarChunks(ctx, query, vectorstore.SearchOptions{
		Limit:       opts.TopK,
		DocumentIDs: opts.DocumentIDs,
		Threshold:   opts.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	r.logger.Debug("retrieved context", "chunks", len(chunks), "top_k", opts.TopK)
	return &RetrievalResult{Chunks: chunks, Query: query}, nil
}

// RetrieveResumeContext runs two independent scoped searches, one against
// the resume and one against the job description. Each search has its own
// TopK budget: a rich match on one document never reduces the other's, so
// both documents stay represented in the context.
func (r *Retriever) RetrieveResumeContext(ctx context.Context, query, resumeID, jobDescriptionID string, opts ScreeningOptions) (*ScreeningRetrievalResult, error) {
	if opts.TopK <= 0 {
		opts.TopK = DefaultScreeningTopK
	}

	resumeChunks, err := r.searcher.SearchSimilarChunks(ctx, query, vectorstore.SearchOptions{
		Limit:       opts.TopK,
		DocumentIDs: []string{resumeID},
		Threshold:   opts.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve resume context: %w", err)
	}

	jobDescriptionChunks, err := r.searcher.SearchSimilarChunks(ctx, query, vectorstore.SearchOptions{
		Limit:       opts.TopK,
		DocumentIDs: []string{jobDescriptionID},
		Threshold:   opts.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve resume context: %w", err)
	}

	if len(resumeChunks) == 0 && len(jobDescriptionChunks) == 0 {
		r.logger.Warn("no chunks retrieved from either document",
			"resume_id", resumeID,
			"job_description_id", jobDescriptionID,
			"threshold", opts.Threshold,
		)
	}

	return &ScreeningRetrievalResult{
		ResumeChunks:         resumeChunks,
		JobDescriptionChunks: jobDescriptionChunks,
		Query:                query,
	}, nil
}
