//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStorage creates a test storage instance and ensures collection exists.
// Skips test if Qdrant is not running.
func setupTestStorage(t *testing.T) *QdrantStorage {
	storage, err := NewQdrantStorage("localhost", 6334)
	if err != nil {
		t.Skipf("Qdrant not available: %v", err)
	}

	err = storage.EnsureCollection(context.Background())
	require.NoError(t, err, "Failed to ensure collection")

	return storage
}

// testVector returns a unit-ish vector whose direction is controlled by seed,
// so similarity ordering in tests is predictable.
func testVector(seed float32) []float32 {
	v := make([]float32, VectorDimension)
	v[0] = 1
	v[1] = seed
	return v
}

func storedChunk(docID string, index int, seed float32) *StoredChunk {
	return &StoredChunk{
		ID:               uuid.New().String(),
		DocumentID:       docID,
		ChunkText:        "chunk text",
		ChunkIndex:       index,
		DocumentFileName: "resume.pdf",
		DocumentType:     "resume",
		StartChar:        index * 700,
		EndChar:          index*700 + 800,
		TokenCount:       200,
		Embedding:        testVector(seed),
	}
}

func TestUpsertAndScrollChunks(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	docID := uuid.New().String()
	chunks := []*StoredChunk{
		storedChunk(docID, 2, 0.3),
		storedChunk(docID, 0, 0.1),
		storedChunk(docID, 1, 0.2),
	}

	err := storage.UpsertChunks(ctx, chunks)
	require.NoError(t, err)

	got, err := storage.ScrollDocumentChunks(ctx, docID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by chunk index regardless of insertion order.
	for i, chunk := range got {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, docID, chunk.DocumentID)
		assert.Equal(t, "resume.pdf", chunk.DocumentFileName)
		assert.Equal(t, "resume", chunk.DocumentType)
	}
}

func TestUpsertChunks_DimensionMismatch(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()

	chunk := storedChunk(uuid.New().String(), 0, 0)
	chunk.Embedding = make([]float32, 12)

	err := storage.UpsertChunks(context.Background(), []*StoredChunk{chunk})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestQueryChunks_ScopedToDocuments(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	docA := uuid.New().String()
	docB := uuid.New().String()

	err := storage.UpsertChunks(ctx, []*StoredChunk{
		storedChunk(docA, 0, 0.1),
		storedChunk(docA, 1, 0.2),
		storedChunk(docB, 0, 0.3),
	})
	require.NoError(t, err)

	results, err := storage.QueryChunks(ctx, testVector(0.1), 10, []string{docA})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.Equal(t, docA, result.DocumentID, "scoped search must not leak other documents")
	}

	// Sorted by similarity descending.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestQueryChunks_LimitCeiling(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	docID := uuid.New().String()
	var chunks []*StoredChunk
	for i := 0; i < 7; i++ {
		chunks = append(chunks, storedChunk(docID, i, float32(i)*0.05))
	}
	require.NoError(t, storage.UpsertChunks(ctx, chunks))

	results, err := storage.QueryChunks(ctx, testVector(0.1), 3, []string{docID})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestScrollDocumentChunks_MultiplePages(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	// More chunks than one scroll page (100) so pagination is exercised;
	// the page-boundary point must not come back twice.
	docID := uuid.New().String()
	var chunks []*StoredChunk
	for i := 0; i < 230; i++ {
		chunks = append(chunks, storedChunk(docID, i, float32(i)*0.001))
	}
	require.NoError(t, storage.UpsertChunks(ctx, chunks))
	defer storage.DeleteDocumentChunks(ctx, docID)

	got, err := storage.ScrollDocumentChunks(ctx, docID)
	require.NoError(t, err)
	require.Len(t, got, 230)

	for i, chunk := range got {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestGetCollectionInfo(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	docID := uuid.New().String()
	require.NoError(t, storage.UpsertChunks(ctx, []*StoredChunk{
		storedChunk(docID, 0, 0.1),
		storedChunk(docID, 1, 0.2),
	}))
	defer storage.DeleteDocumentChunks(ctx, docID)

	info, err := storage.GetCollectionInfo(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, info.PointsCount, uint64(2))
}

func TestDeleteDocumentChunks_Idempotent(t *testing.T) {
	storage := setupTestStorage(t)
	defer storage.Close()
	ctx := context.Background()

	docID := uuid.New().String()
	require.NoError(t, storage.UpsertChunks(ctx, []*StoredChunk{
		storedChunk(docID, 0, 0.1),
		storedChunk(docID, 1, 0.2),
	}))

	require.NoError(t, storage.DeleteDocumentChunks(ctx, docID))

	got, err := storage.ScrollDocumentChunks(ctx, docID)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting again is not an error.
	require.NoError(t, storage.DeleteDocumentChunks(ctx, docID))
}
