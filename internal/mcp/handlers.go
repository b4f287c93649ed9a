package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Msparihar/talent-match/internal/rag"
	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// makeQueryDocumentsHandler creates the query_documents tool handler.
// Runs the single-scope retrieval path: embed the query, search the
// vector store (optionally scoped to document IDs), and return the
// rendered context plus the prompt pair for the generation call.
func makeQueryDocumentsHandler(svc *rag.Service) func(
	context.Context, *mcp.CallToolRequest, QueryDocumentsInput,
) (*mcp.CallToolResult, QueryDocumentsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input QueryDocumentsInput) (
		*mcp.CallToolResult, QueryDocumentsOutput, error,
	) {
		opts := rag.DefaultRetrievalOptions()
		if input.TopK > 0 {
			opts.TopK = input.TopK
		}
		opts.DocumentIDs = input.DocumentIDs

		result, err := svc.QueryRAG(ctx, input.Query, opts)
		if err != nil {
			return nil, QueryDocumentsOutput{}, err
		}

		return nil, QueryDocumentsOutput{
			Context:        result.Context,
			SystemPrompt:   result.FormattedPrompt.SystemPrompt,
			UserMessage:    result.FormattedPrompt.UserMessage,
			RelevantChunks: result.RelevantChunks,
		}, nil
	}
}

// makeScreenResumeHandler creates the screen_resume tool handler.
// Runs two independent retrievals, one scoped to the resume and one to
// the job description, and returns the sectioned screening context.
func makeScreenResumeHandler(svc *rag.Service) func(
	context.Context, *mcp.CallToolRequest, ScreenResumeInput,
) (*mcp.CallToolResult, ScreenResumeOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScreenResumeInput) (
		*mcp.CallToolResult, ScreenResumeOutput, error,
	) {
		if input.ResumeID == "" || input.JobDescriptionID == "" {
			return nil, ScreenResumeOutput{}, fmt.Errorf("resume_id and job_description_id are required")
		}

		result, err := svc.QueryResumeScreening(ctx, input.Question, input.ResumeID, input.JobDescriptionID, rag.DefaultScreeningOptions())
		if err != nil {
			return nil, ScreenResumeOutput{}, err
		}

		return nil, ScreenResumeOutput{
			Context:        result.Context,
			SystemPrompt:   result.FormattedPrompt.SystemPrompt,
			UserMessage:    result.FormattedPrompt.UserMessage,
			RelevantChunks: result.RelevantChunks,
		}, nil
	}
}

// makeListChunksHandler creates the list_document_chunks tool handler.
// Returns a document's stored chunks ordered by chunk index, without
// their embeddings.
func makeListChunksHandler(store *vectorstore.VectorStore) func(
	context.Context, *mcp.CallToolRequest, ListDocumentChunksInput,
) (*mcp.CallToolResult, ListDocumentChunksOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentChunksInput) (
		*mcp.CallToolResult, ListDocumentChunksOutput, error,
	) {
		chunks, err := store.GetDocumentChunks(ctx, input.DocumentID)
		if err != nil {
			return nil, ListDocumentChunksOutput{}, fmt.Errorf("failed to list chunks: %w", err)
		}

		summaries := make([]ChunkSummary, 0, len(chunks))
		var fileName string
		for _, chunk := range chunks {
			fileName = chunk.DocumentFileName
			summaries = append(summaries, ChunkSummary{
				ID:         chunk.ID,
				Index:      chunk.ChunkIndex,
				Text:       chunk.ChunkText,
				TokenCount: chunk.TokenCount,
			})
		}

		return nil, ListDocumentChunksOutput{
			DocumentID: input.DocumentID,
			FileName:   fileName,
			Chunks:     summaries,
			Count:      len(summaries),
		}, nil
	}
}

// makeDeleteDocumentHandler creates the delete_document tool handler.
// Removes every chunk belonging to the document. Deleting a document
// with no chunks succeeds.
func makeDeleteDocumentHandler(store *vectorstore.VectorStore) func(
	context.Context, *mcp.CallToolRequest, DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteDocumentInput) (
		*mcp.CallToolResult, DeleteDocumentOutput, error,
	) {
		if input.DocumentID == "" {
			return nil, DeleteDocumentOutput{}, fmt.Errorf("document_id is required")
		}

		if err := store.DeleteDocumentEmbeddings(ctx, input.DocumentID); err != nil {
			return nil, DeleteDocumentOutput{}, fmt.Errorf("failed to delete document: %w", err)
		}

		return nil, DeleteDocumentOutput{
			DocumentID: input.DocumentID,
			Deleted:    true,
		}, nil
	}
}
