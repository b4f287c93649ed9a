package storage

// StoredChunk is a persisted document chunk with its embedding vector.
// Chunks are written in a batch during document ingestion, read-only
// afterward, and removed when their owning document is purged.
type StoredChunk struct {
	ID               string    // UUID point ID
	DocumentID       string    // Owning document
	ChunkText        string    // Chunk text content
	ChunkIndex       int       // Position in document (0, 1, 2...)
	DocumentFileName string    // Source file label, for provenance in results
	DocumentType     string    // "resume" or "job_description"
	StartChar        int       // Span start within the source text
	EndChar          int       // Span end (exclusive)
	TokenCount       int       // Coarse estimate from the chunker
	Embedding        []float32 // 768-dim vector (text-embedding-3-small)
}

// ScoredChunk pairs a stored chunk with its cosine similarity to a query
// vector, in [-1, 1].
type ScoredChunk struct {
	StoredChunk
	Similarity float64
}

// CollectionName is the single Qdrant collection for all document chunks.
const CollectionName = "document_chunks"

// VectorDimension is the embedding size requested from text-embedding-3-small.
const VectorDimension = 768
