// Package storage provides Qdrant-backed persistence for document chunks
// and their embedding vectors.
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantStorage wraps the Qdrant client with connection management and health checks.
type QdrantStorage struct {
	client *qdrant.Client
	host   string
	port   int
}

// NewQdrantStorage creates a new Qdrant client with health validation.
// It performs health check with retry on startup and fails fast if Qdrant is unreachable.
func NewQdrantStorage(host string, port int) (*QdrantStorage, error) {
	// Create Qdrant client using gRPC
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	storage := &QdrantStorage{
		client: client,
		host:   host,
		port:   port,
	}

	// Perform health check with exponential backoff retry
	ctx := context.Background()
	err = storage.healthCheckWithRetry(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrQdrantUnreachable, err)
	}

	return storage, nil
}

// healthCheckWithRetry performs health check with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (s *QdrantStorage) healthCheckWithRetry(ctx context.Context) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		return s.Health(ctx)
	}

	return backoff.Retry(operation, exponentialBackoff)
}

// Health performs a single health check against Qdrant.
// Returns nil if Qdrant is healthy, error otherwise.
func (s *QdrantStorage) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}

	return nil
}

// EnsureCollection ensures the chunk collection exists with proper configuration:
// 768-dimension cosine vectors and payload indexes on the filterable fields.
// Idempotent - safe to call multiple times.
func (s *QdrantStorage) EnsureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collections {
		if name == CollectionName {
			// Collection already exists, nothing to do
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     VectorDimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if err := s.createPayloadIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create payload indexes: %w", err)
	}

	return nil
}

// createPayloadIndexes creates indexes for the filterable fields.
// Without these, document-scoped filtering degrades to a full scan.
func (s *QdrantStorage) createPayloadIndexes(ctx context.Context) error {
	fields := []string{
		"document_id",   // Scope searches and deletes to a document
		"document_type", // Distinguish resume vs job description chunks
	}

	for _, field := range fields {
		_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: CollectionName,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to create index for field %s: %w", field, err)
		}
	}

	return nil
}

// ClearCollection deletes all points in the collection.
// Useful for full re-ingestion scenarios.
func (s *QdrantStorage) ClearCollection(ctx context.Context) error {
	err := s.client.DeleteCollection(ctx, CollectionName)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return s.EnsureCollection(ctx)
}

// Close closes the Qdrant client connection.
func (s *QdrantStorage) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// upsertWithRetry performs upsert operation with exponential backoff retry.
// A batch that fails partway is retried as a whole, never row by row.
func (s *QdrantStorage) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         points,
		})
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(exponentialBackoff, ctx))
}

// UpsertChunks stores the given chunks with embeddings in a single batched
// upsert. Callers control batch sizing; the write is retried as a unit.
func (s *QdrantStorage) UpsertChunks(ctx context.Context, chunks []*StoredChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for i, chunk := range chunks {
		if len(chunk.Embedding) != VectorDimension {
			return fmt.Errorf("%w: chunk %d has %d dimensions, expected %d",
				ErrDimensionMismatch, i, len(chunk.Embedding), VectorDimension)
		}
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(chunk.ID),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"document_id":        chunk.DocumentID,
				"chunk_text":         chunk.ChunkText,
				"chunk_index":        chunk.ChunkIndex,
				"document_file_name": chunk.DocumentFileName,
				"document_type":      chunk.DocumentType,
				"start_char":         chunk.StartChar,
				"end_char":           chunk.EndChar,
				"token_count":        chunk.TokenCount,
			}),
		}
	}

	return s.upsertWithRetry(ctx, points)
}

// QueryChunks performs vector similarity search, optionally restricted to a
// set of document IDs. Returns at most limit chunks with cosine similarity
// scores, ordered by similarity descending. No threshold is applied here;
// callers post-filter.
func (s *QdrantStorage) QueryChunks(ctx context.Context, embedding []float32, limit int, documentIDs []string) ([]*ScoredChunk, error) {
	if len(embedding) != VectorDimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, expected %d",
			ErrDimensionMismatch, len(embedding), VectorDimension)
	}

	var filter *qdrant.Filter
	if len(documentIDs) > 0 {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords("document_id", documentIDs...),
			},
		}
	}

	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}

	scored := make([]*ScoredChunk, 0, len(results))
	for _, result := range results {
		scored = append(scored, &ScoredChunk{
			StoredChunk: chunkFromPayload(result.Id.GetUuid(), result.Payload),
			Similarity:  float64(result.Score),
		})
	}

	return scored, nil
}

// ScrollDocumentChunks returns every chunk of a document, ordered by chunk
// index. No similarity is involved; used for inspection and debugging.
func (s *QdrantStorage) ScrollDocumentChunks(ctx context.Context, documentID string) ([]*StoredChunk, error) {
	var chunks []*StoredChunk
	var offset *qdrant.PointId

	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentID),
		},
	}

	batchSize := uint32(100)
	seen := make(map[string]bool)

	for {
		results, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionName,
			Filter:         filter,
			Limit:          qdrant.PtrOf(batchSize),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll chunks: %w", err)
		}

		for _, result := range results {
			id := result.Id.GetUuid()
			// The scroll offset is inclusive, so each page after the
			// first re-delivers the boundary point.
			if seen[id] {
				continue
			}
			seen[id] = true
			chunk := chunkFromPayload(id, result.Payload)
			chunks = append(chunks, &chunk)
		}

		// Stop if we got fewer results than batch size (no more pages)
		if uint32(len(results)) < batchSize {
			break
		}

		offset = results[len(results)-1].Id
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
	return chunks, nil
}

// DeleteDocumentChunks removes all chunks belonging to a document.
// Idempotent - deleting a document with no chunks is not an error.
func (s *QdrantStorage) DeleteDocumentChunks(ctx context.Context, documentID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: CollectionName,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("document_id", documentID),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}

// chunkFromPayload reconstructs a StoredChunk from a Qdrant point payload.
// The embedding vector is not read back; search and inspection never need it.
func chunkFromPayload(id string, payload map[string]*qdrant.Value) StoredChunk {
	return StoredChunk{
		ID:               id,
		DocumentID:       payload["document_id"].GetStringValue(),
		ChunkText:        payload["chunk_text"].GetStringValue(),
		ChunkIndex:       int(payload["chunk_index"].GetIntegerValue()),
		DocumentFileName: payload["document_file_name"].GetStringValue(),
		DocumentType:     payload["document_type"].GetStringValue(),
		StartChar:        int(payload["start_char"].GetIntegerValue()),
		EndChar:          int(payload["end_char"].GetIntegerValue()),
		TokenCount:       int(payload["token_count"].GetIntegerValue()),
	}
}

// CollectionInfo contains collection statistics
type CollectionInfo struct {
	PointsCount uint64
}

// GetCollectionInfo retrieves collection statistics including total points count.
// Used for reporting the total number of stored chunks.
func (s *QdrantStorage) GetCollectionInfo(ctx context.Context) (*CollectionInfo, error) {
	collection, err := s.client.GetCollectionInfo(ctx, CollectionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	return &CollectionInfo{
		PointsCount: collection.GetPointsCount(),
	}, nil
}
