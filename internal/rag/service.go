package rag

import (
	"context"
	"errors"
	"log/slog"
)

// ErrQueryFailed is the only error the orchestrator surfaces. Internal
// causes are logged, not exposed, so callers get one uniform failure path.
var ErrQueryFailed = errors.New("failed to process query")

// RAGResult is a completed query: the rendered context, the prompt pair
// for the generation call, and the number of grounding chunks.
type RAGResult struct {
	Context         string
	FormattedPrompt FormattedPrompt
	RelevantChunks  int
}

// Service is the external-facing surface of the RAG core.
type Service struct {
	retriever *Retriever
	logger    *slog.Logger
}

// NewService creates the RAG orchestrator over the given searcher.
func NewService(searcher Searcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		retriever: NewRetriever(searcher, logger),
		logger:    logger.With("component", "rag"),
	}
}

// QueryRAG runs the single-scope retrieval path: retrieve, render context,
// compose the prompt pair.
func (s *Service) QueryRAG(ctx context.Context, query string, opts RetrievalOptions) (*RAGResult, error) {
	retrieved, err := s.retriever.RetrieveContext(ctx, query, opts)
	if err != nil {
		s.logger.Error("rag query failed", "error", err)
		return nil, ErrQueryFailed
	}

	contextBlock := BuildContext(retrieved.Chunks)
	prompt := FormatMessageWithContext(query, contextBlock, "")

	return &RAGResult{
		Context:         contextBlock,
		FormattedPrompt: prompt,
		RelevantChunks:  len(retrieved.Chunks),
	}, nil
}

// QueryResumeScreening runs the dual-document path: two independent scoped
// retrievals, the sectioned screening context, and the prompt pair.
func (s *Service) QueryResumeScreening(ctx context.Context, query, resumeID, jobDescriptionID string, opts ScreeningOptions) (*RAGResult, error) {
	retrieved, err := s.retriever.RetrieveResumeContext(ctx, query, resumeID, jobDescriptionID, opts)
	if err != nil {
		s.logger.Error("resume screening query failed",
			"error", err,
			"resume_id", resumeID,
			"job_description_id", jobDescriptionID,
		)
		return nil, ErrQueryFailed
	}

	contextBlock := BuildResumeScreeningContext(retrieved.ResumeChunks, retrieved.JobDescriptionChunks)
	prompt := FormatMessageWithContext(query, contextBlock, "")

	return &RAGResult{
		Context:         contextBlock,
		FormattedPrompt: prompt,
		RelevantChunks:  len(retrieved.ResumeChunks) + len(retrieved.JobDescriptionChunks),
	}, nil
}
