// Package vectorstore persists chunk embeddings per document and executes
// similarity search with document scoping, a ranked cutoff, and a
// similarity threshold.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Msparihar/talent-match/internal/chunking"
	"github.com/Msparihar/talent-match/internal/embedding"
	"github.com/Msparihar/talent-match/internal/storage"
)

// insertBatchSize bounds how many chunk rows go into a single write.
const insertBatchSize = 10

// DefaultSearchLimit and DefaultSearchThreshold apply when SearchOptions
// leaves them unset (via DefaultSearchOptions).
const (
	DefaultSearchLimit     = 5
	DefaultSearchThreshold = 0.5
)

// DocumentType tags a document as one side of the screening pair.
type DocumentType string

const (
	DocumentTypeResume         DocumentType = "resume"
	DocumentTypeJobDescription DocumentType = "job_description"
)

// DocumentInfo is the provenance carried into every stored chunk so search
// results are self-contained.
type DocumentInfo struct {
	FileName string
	Type     DocumentType
}

// SearchOptions controls a similarity search. The caller is responsible for
// validating values; none are rejected here.
type SearchOptions struct {
	Limit       int      // Hard cap on fetched rows; defaults to DefaultSearchLimit when <= 0
	DocumentIDs []string // Optional scope: only chunks of these documents
	Threshold   float64  // Similarity floor, applied after Limit
}

// DefaultSearchOptions returns the standard search configuration.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:     DefaultSearchLimit,
		Threshold: DefaultSearchThreshold,
	}
}

// SearchResult is one similarity hit. Results are transient, produced fresh
// per query, ordered by Similarity descending.
type SearchResult struct {
	ID               string
	DocumentID       string
	ChunkText        string
	ChunkIndex       int
	Similarity       float64
	DocumentFileName string
	DocumentType     DocumentType
}

// Embedder generates embeddings for queries and chunk batches.
// *embedding.Embedder implements it.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([]embedding.Result, error)
}

// ChunkStore is the persistence backend for chunk records.
// *storage.QdrantStorage implements it.
type ChunkStore interface {
	UpsertChunks(ctx context.Context, chunks []*storage.StoredChunk) error
	QueryChunks(ctx context.Context, embedding []float32, limit int, documentIDs []string) ([]*storage.ScoredChunk, error)
	ScrollDocumentChunks(ctx context.Context, documentID string) ([]*storage.StoredChunk, error)
	DeleteDocumentChunks(ctx context.Context, documentID string) error
}

// VectorStore composes the embedder and the chunk store into the ingestion
// and retrieval surface of the RAG core.
type VectorStore struct {
	embedder Embedder
	store    ChunkStore
	logger   *slog.Logger
}

// New creates a VectorStore. A nil logger falls back to slog.Default.
func New(embedder Embedder, store ChunkStore, logger *slog.Logger) *VectorStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &VectorStore{
		embedder: embedder,
		store:    store,
		logger:   logger.With("component", "vectorstore"),
	}
}

// StoreDocumentEmbeddings embeds all chunk texts in one batch call, then
// writes the chunk records in insert batches of insertBatchSize. A batch
// write that fails leaves earlier batches in place; ProcessDocument's
// delete-before-write makes re-ingestion converge.
func (v *VectorStore) StoreDocumentEmbeddings(ctx context.Context, documentID string, chunks []chunking.TextChunk, info DocumentInfo) error {
	if len(chunks) == 0 {
		v.logger.Info("no chunks to store", "document_id", documentID)
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	results, err := v.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to store document embeddings: %w", err)
	}

	records := make([]*storage.StoredChunk, len(chunks))
	for i, chunk := range chunks {
		records[i] = &storage.StoredChunk{
			ID:               uuid.New().String(),
			DocumentID:       documentID,
			ChunkText:        chunk.Text,
			ChunkIndex:       chunk.Index,
			DocumentFileName: info.FileName,
			DocumentType:     string(info.Type),
			StartChar:        chunk.StartChar,
			EndChar:          chunk.EndChar,
			TokenCount:       chunk.TokenCount,
			Embedding:        results[i].Embedding,
		}
	}

	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		if err := v.store.UpsertChunks(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to store document embeddings: batch %d-%d: %w", start, end, err)
		}
	}

	v.logger.Info("stored embeddings", "document_id", documentID, "chunks", len(records))
	return nil
}

// ProcessDocument is the standard ingestion entry point: chunk with the
// default parameters, embed, and store. Any chunks from a previous
// ingestion of the same document are removed first, so a retried or
// repeated ingest replaces rather than duplicates. Returns the number of
// chunks stored.
func (v *VectorStore) ProcessDocument(ctx context.Context, documentID, content string, info DocumentInfo) (int, error) {
	chunks := chunking.ChunkText(content, chunking.DefaultOptions())
	v.logger.Info("processing document", "document_id", documentID, "chunks", len(chunks))

	if err := v.store.DeleteDocumentChunks(ctx, documentID); err != nil {
		return 0, fmt.Errorf("failed to replace existing chunks: %w", err)
	}

	if err := v.StoreDocumentEmbeddings(ctx, documentID, chunks, info); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// SearchSimilarChunks embeds the query and returns the most similar stored
// chunks, ordered by cosine similarity descending.
//
// Limit caps the rows fetched from the store; Threshold is applied
// afterward as a post-filter. A search can therefore legitimately return
// fewer than Limit results - rows below the threshold are dropped, never
// backfilled with lower-similarity rows.
func (v *VectorStore) SearchSimilarChunks(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}

	queryVector, err := v.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar chunks: %w", err)
	}

	scored, err := v.store.QueryChunks(ctx, queryVector, opts.Limit, opts.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar chunks: %w", err)
	}

	results := make([]SearchResult, 0, len(scored))
	for _, chunk := range scored {
		if chunk.Similarity < opts.Threshold {
			continue
		}
		results = append(results, SearchResult{
			ID:               chunk.ID,
			DocumentID:       chunk.DocumentID,
			ChunkText:        chunk.ChunkText,
			ChunkIndex:       chunk.ChunkIndex,
			Similarity:       chunk.Similarity,
			DocumentFileName: chunk.DocumentFileName,
			DocumentType:     DocumentType(chunk.DocumentType),
		})
	}

	v.logger.Debug("similarity search",
		"query_len", len(query),
		"fetched", len(scored),
		"above_threshold", len(results),
		"threshold", opts.Threshold,
	)
	return results, nil
}

// GetDocumentChunks returns every stored chunk of a document, ordered by
// chunk index.
func (v *VectorStore) GetDocumentChunks(ctx context.Context, documentID string) ([]*storage.StoredChunk, error) {
	chunks, err := v.store.ScrollDocumentChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document chunks: %w", err)
	}
	return chunks, nil
}

// DeleteDocumentEmbeddings removes all chunks for a document. Safe to call
// on a document that has none.
func (v *VectorStore) DeleteDocumentEmbeddings(ctx context.Context, documentID string) error {
	if err := v.store.DeleteDocumentChunks(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document embeddings: %w", err)
	}
	return nil
}
