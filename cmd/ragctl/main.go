// Package main provides the ragctl CLI for managing the document index.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Msparihar/talent-match/internal/embedding"
	"github.com/Msparihar/talent-match/internal/ingest"
	"github.com/Msparihar/talent-match/internal/rag"
	"github.com/Msparihar/talent-match/internal/storage"
	"github.com/Msparihar/talent-match/internal/vectorstore"
)

var rootCmd = &cobra.Command{
	Use:   "ragctl",
	Short: "Resume screening document index tool",
	Long:  "CLI tool for managing the resume and job description index in Qdrant",
}

var (
	ingestDocType string
	searchTopK    int
	searchDocIDs  []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest documents into the vector store",
	Long: `Chunks, embeds, and stores documents for retrieval.

Each file is split on sentence boundaries, embedded with OpenAI, and
stored in Qdrant. Markdown files have their formatting stripped first.

Environment variables:
  QDRANT_HOST    Qdrant hostname (default: localhost)
  QDRANT_PORT    Qdrant gRPC port (default: 6334)
  OPENAI_API_KEY OpenAI API key for embeddings (required)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a retrieval query against the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var chunksCmd = &cobra.Command{
	Use:   "chunks [document-id]",
	Short: "List the stored chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunks,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete all chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection status",
	RunE:  runStatus,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDocType, "type", "resume", "document type: resume or job_description")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", rag.DefaultTopK, "maximum number of chunks to retrieve")
	searchCmd.Flags().StringSliceVar(&searchDocIDs, "document", nil, "restrict search to these document IDs")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chunksCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	docType := vectorstore.DocumentType(ingestDocType)
	if docType != vectorstore.DocumentTypeResume && docType != vectorstore.DocumentTypeJobDescription {
		return fmt.Errorf("invalid document type %q: must be resume or job_description", ingestDocType)
	}

	store, embedder, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer embedder.Close()

	vectorStore := vectorstore.New(embedder, store, slog.Default())

	docs := make([]ingest.Document, 0, len(args))
	for _, path := range args {
		doc, err := ingest.LoadDocument(path, docType)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	pipeline := ingest.NewPipeline(vectorStore, slog.Default())
	result, err := pipeline.IngestAll(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Println("Ingestion complete!")
	fmt.Printf("  Documents: %d/%d\n", result.SuccessfulDocs, result.TotalDocs)
	fmt.Printf("  Chunks: %d\n", result.TotalChunks)
	fmt.Printf("  Duration: %s\n", time.Since(start).Round(time.Millisecond))

	for _, doc := range docs {
		fmt.Printf("  %s -> %s\n", doc.FileName, doc.ID)
	}

	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.FileName, failed.Reason)
		}
	}

	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, embedder, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer embedder.Close()

	vectorStore := vectorstore.New(embedder, store, slog.Default())
	service := rag.NewService(vectorStore, slog.Default())

	opts := rag.DefaultRetrievalOptions()
	opts.TopK = searchTopK
	opts.DocumentIDs = searchDocIDs

	result, err := service.QueryRAG(ctx, args[0], opts)
	if err != nil {
		return err
	}

	fmt.Printf("Relevant chunks: %d\n\n", result.RelevantChunks)
	fmt.Println(result.Context)
	return nil
}

func runChunks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, embedder, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer embedder.Close()

	vectorStore := vectorstore.New(embedder, store, slog.Default())

	chunks, err := vectorStore.GetDocumentChunks(ctx, args[0])
	if err != nil {
		return err
	}

	if len(chunks) == 0 {
		fmt.Printf("No chunks found for document %s\n", args[0])
		return nil
	}

	fmt.Printf("Document %s (%s, %s): %d chunks\n\n", args[0], chunks[0].DocumentFileName, chunks[0].DocumentType, len(chunks))
	for _, chunk := range chunks {
		fmt.Printf("[%d] %d tokens, chars %d-%d\n%s\n\n", chunk.ChunkIndex, chunk.TokenCount, chunk.StartChar, chunk.EndChar, chunk.ChunkText)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, embedder, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer embedder.Close()

	vectorStore := vectorstore.New(embedder, store, slog.Default())

	if err := vectorStore.DeleteDocumentEmbeddings(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted chunks for document %s\n", args[0])
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	qdrantHost := getEnv("QDRANT_HOST", "localhost")
	qdrantPort := getEnvInt("QDRANT_PORT", 6334)

	store, err := storage.NewQdrantStorage(qdrantHost, qdrantPort)
	if err != nil {
		return fmt.Errorf("failed to connect to Qdrant: %w", err)
	}
	defer store.Close()

	if err := store.Health(ctx); err != nil {
		return fmt.Errorf("Qdrant health check failed: %w", err)
	}

	info, err := store.GetCollectionInfo(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Qdrant: %s:%d healthy\n", qdrantHost, qdrantPort)
	fmt.Printf("Collection: %s\n", storage.CollectionName)
	fmt.Printf("  Points: %d\n", info.PointsCount)
	return nil
}

// connect builds the Qdrant storage and embedder shared by most commands.
func connect(ctx context.Context) (*storage.QdrantStorage, *embedding.Embedder, error) {
	qdrantHost := getEnv("QDRANT_HOST", "localhost")
	qdrantPort := getEnvInt("QDRANT_PORT", 6334)

	store, err := storage.NewQdrantStorage(qdrantHost, qdrantPort)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	if err := store.EnsureCollection(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to ensure collection: %w", err)
	}

	embeddingClient, err := embedding.NewClient()
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	embedder, err := embedding.NewEmbedder(embeddingClient)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return store, embedder, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
