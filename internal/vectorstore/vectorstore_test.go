package vectorstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Msparihar/talent-match/internal/chunking"
	"github.com/Msparihar/talent-match/internal/embedding"
	"github.com/Msparihar/talent-match/internal/storage"
)

type fakeEmbedder struct {
	embedErr error
	batchErr error
	calls    int
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return make([]float32, storage.VectorDimension), nil
}

func (f *fakeEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([]embedding.Result, error) {
	f.calls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	results := make([]embedding.Result, len(texts))
	for i, text := range texts {
		results[i] = embedding.Result{Embedding: make([]float32, storage.VectorDimension), Text: text}
	}
	return results, nil
}

type fakeStore struct {
	upsertBatches [][]*storage.StoredChunk
	queryResults  []*storage.ScoredChunk
	queryErr      error
	gotLimit      int
	gotDocIDs     []string
	scrolled      []*storage.StoredChunk
	deleted       []string
	deleteErr     error
}

func (f *fakeStore) UpsertChunks(ctx context.Context, chunks []*storage.StoredChunk) error {
	batch := make([]*storage.StoredChunk, len(chunks))
	copy(batch, chunks)
	f.upsertBatches = append(f.upsertBatches, batch)
	return nil
}

func (f *fakeStore) QueryChunks(ctx context.Context, embedding []float32, limit int, documentIDs []string) ([]*storage.ScoredChunk, error) {
	f.gotLimit = limit
	f.gotDocIDs = documentIDs
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if limit < len(f.queryResults) {
		return f.queryResults[:limit], nil
	}
	return f.queryResults, nil
}

func (f *fakeStore) ScrollDocumentChunks(ctx context.Context, documentID string) ([]*storage.StoredChunk, error) {
	return f.scrolled, nil
}

func (f *fakeStore) DeleteDocumentChunks(ctx context.Context, documentID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, documentID)
	return nil
}

func scoredChunk(docID string, index int, similarity float64) *storage.ScoredChunk {
	return &storage.ScoredChunk{
		StoredChunk: storage.StoredChunk{
			ID:               "chunk-" + docID,
			DocumentID:       docID,
			ChunkText:        "relevant text",
			ChunkIndex:       index,
			DocumentFileName: "resume.pdf",
			DocumentType:     "resume",
		},
		Similarity: similarity,
	}
}

func textChunks(n int) []chunking.TextChunk {
	chunks := make([]chunking.TextChunk, n)
	for i := range chunks {
		chunks[i] = chunking.TextChunk{Text: "chunk", Index: i}
	}
	return chunks
}

func TestStoreDocumentEmbeddings_InsertBatches(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{}, store, nil)

	// 23 chunks -> batches of 10, 10, 3
	err := vs.StoreDocumentEmbeddings(context.Background(), "doc-1", textChunks(23), DocumentInfo{
		FileName: "resume.pdf",
		Type:     DocumentTypeResume,
	})
	require.NoError(t, err)

	require.Len(t, store.upsertBatches, 3)
	assert.Len(t, store.upsertBatches[0], 10)
	assert.Len(t, store.upsertBatches[1], 10)
	assert.Len(t, store.upsertBatches[2], 3)

	// Records carry identity and provenance, in chunk order.
	var index int
	for _, batch := range store.upsertBatches {
		for _, record := range batch {
			assert.Equal(t, "doc-1", record.DocumentID)
			assert.Equal(t, index, record.ChunkIndex)
			assert.Equal(t, "resume.pdf", record.DocumentFileName)
			assert.Equal(t, "resume", record.DocumentType)
			assert.NotEmpty(t, record.ID)
			assert.Len(t, record.Embedding, storage.VectorDimension)
			index++
		}
	}
}

func TestStoreDocumentEmbeddings_EmptyChunks(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	vs := New(embedder, store, nil)

	err := vs.StoreDocumentEmbeddings(context.Background(), "doc-1", nil, DocumentInfo{})
	require.NoError(t, err)
	assert.Empty(t, store.upsertBatches)
	assert.Zero(t, embedder.calls, "no embedding call for empty input")
}

func TestStoreDocumentEmbeddings_EmbeddingFailure(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{batchErr: errors.New("rate limited")}, store, nil)

	err := vs.StoreDocumentEmbeddings(context.Background(), "doc-1", textChunks(3), DocumentInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store document embeddings")
	assert.Empty(t, store.upsertBatches, "nothing written when embedding fails")
}

func TestProcessDocument_ReplacesExistingChunks(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{}, store, nil)

	content := strings.Repeat("A sentence about professional Go experience. ", 40)
	count, err := vs.ProcessDocument(context.Background(), "doc-1", content, DocumentInfo{
		FileName: "resume.pdf",
		Type:     DocumentTypeResume,
	})
	require.NoError(t, err)
	assert.Greater(t, count, 1)
	assert.Equal(t, []string{"doc-1"}, store.deleted, "stale chunks removed before write")
	assert.NotEmpty(t, store.upsertBatches)
}

func TestProcessDocument_EmptyContent(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{}, store, nil)

	count, err := vs.ProcessDocument(context.Background(), "doc-1", "   ", DocumentInfo{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.upsertBatches)
}

func TestSearchSimilarChunks_ThresholdAfterLimit(t *testing.T) {
	store := &fakeStore{
		queryResults: []*storage.ScoredChunk{
			scoredChunk("doc-1", 0, 0.91),
			scoredChunk("doc-1", 1, 0.74),
			scoredChunk("doc-2", 0, 0.52),
			scoredChunk("doc-2", 1, 0.31),
			scoredChunk("doc-3", 0, 0.12),
		},
	}
	vs := New(&fakeEmbedder{}, store, nil)

	results, err := vs.SearchSimilarChunks(context.Background(), "query", SearchOptions{
		Limit:     5,
		Threshold: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, store.gotLimit, "limit applied at the data source")
	require.Len(t, results, 3, "rows under threshold dropped, not backfilled")
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
	for _, result := range results {
		assert.GreaterOrEqual(t, result.Similarity, 0.5)
	}
}

func TestSearchSimilarChunks_HighThresholdEmptyNotError(t *testing.T) {
	store := &fakeStore{
		queryResults: []*storage.ScoredChunk{
			scoredChunk("doc-1", 0, 0.6),
		},
	}
	vs := New(&fakeEmbedder{}, store, nil)

	results, err := vs.SearchSimilarChunks(context.Background(), "query", SearchOptions{
		Limit:     5,
		Threshold: 0.99,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSimilarChunks_ZeroThresholdReturnsAll(t *testing.T) {
	store := &fakeStore{
		queryResults: []*storage.ScoredChunk{
			scoredChunk("doc-1", 0, 0.9),
			scoredChunk("doc-1", 1, 0.7),
			scoredChunk("doc-1", 2, 0.5),
			scoredChunk("doc-1", 3, 0.3),
			scoredChunk("doc-1", 4, 0.1),
		},
	}
	vs := New(&fakeEmbedder{}, store, nil)

	results, err := vs.SearchSimilarChunks(context.Background(), "query", SearchOptions{
		Limit:       5,
		DocumentIDs: []string{"doc-1"},
		Threshold:   0.0,
	})
	require.NoError(t, err)
	assert.Len(t, results, 5)
	assert.Equal(t, []string{"doc-1"}, store.gotDocIDs, "document scope passed through")
}

func TestSearchSimilarChunks_DefaultLimit(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{}, store, nil)

	_, err := vs.SearchSimilarChunks(context.Background(), "query", SearchOptions{Threshold: 0.5})
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchLimit, store.gotLimit)
}

func TestSearchSimilarChunks_EmbeddingFailure(t *testing.T) {
	vs := New(&fakeEmbedder{embedErr: errors.New("service down")}, &fakeStore{}, nil)

	_, err := vs.SearchSimilarChunks(context.Background(), "query", DefaultSearchOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to search similar chunks")
}

func TestDeleteDocumentEmbeddings(t *testing.T) {
	store := &fakeStore{}
	vs := New(&fakeEmbedder{}, store, nil)

	require.NoError(t, vs.DeleteDocumentEmbeddings(context.Background(), "doc-1"))
	assert.Equal(t, []string{"doc-1"}, store.deleted)
}
