package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// Document is one unit of ingestion: extracted text plus the identity
// carried into every stored chunk.
type Document struct {
	ID       string
	FileName string
	Type     vectorstore.DocumentType
	Content  string
}

// Result contains statistics about an ingestion run.
type Result struct {
	TotalDocs      int
	SuccessfulDocs int
	TotalChunks    int
	FailedDocs     []FailedDoc
	Duration       time.Duration
}

// FailedDoc represents a document that failed to ingest.
type FailedDoc struct {
	ID       string
	FileName string
	Reason   string
}

// DocumentProcessor is the ingestion entry point of the vector store.
// *vectorstore.VectorStore implements it.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, documentID, content string, info vectorstore.DocumentInfo) (int, error)
}

// Pipeline drives documents through chunking, embedding, and storage.
type Pipeline struct {
	processor DocumentProcessor
	logger    *slog.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(processor DocumentProcessor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		processor: processor,
		logger:    logger.With("component", "ingest"),
	}
}

// IngestAll processes each document and collects per-document failures
// rather than aborting the run; one malformed document does not block the
// rest of a batch.
func (p *Pipeline) IngestAll(ctx context.Context, docs []Document) (*Result, error) {
	start := time.Now()
	result := &Result{TotalDocs: len(docs)}

	for _, doc := range docs {
		chunks, err := p.processor.ProcessDocument(ctx, doc.ID, doc.Content, vectorstore.DocumentInfo{
			FileName: doc.FileName,
			Type:     doc.Type,
		})
		if err != nil {
			p.logger.Warn("failed to ingest document", "document_id", doc.ID, "file", doc.FileName, "error", err)
			result.FailedDocs = append(result.FailedDocs, FailedDoc{
				ID:       doc.ID,
				FileName: doc.FileName,
				Reason:   err.Error(),
			})
			continue
		}
		result.SuccessfulDocs++
		result.TotalChunks += chunks
	}

	result.Duration = time.Since(start)
	p.logger.Info("ingestion complete",
		"successful", result.SuccessfulDocs,
		"failed", len(result.FailedDocs),
		"chunks", result.TotalChunks,
		"duration", result.Duration,
	)

	return result, nil
}

// LoadDocument reads a file from disk and prepares it for ingestion with a
// fresh document ID.
func LoadDocument(path string, docType vectorstore.DocumentType) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	fileName := filepath.Base(path)
	return Document{
		ID:       uuid.New().String(),
		FileName: fileName,
		Type:     docType,
		Content:  ExtractText(fileName, data),
	}, nil
}
