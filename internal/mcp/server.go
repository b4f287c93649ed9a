package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Msparihar/talent-match/internal/rag"
	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// Server wraps the MCP server with dependencies.
type Server struct {
	server *mcp.Server
	rag    *rag.Service
	store  *vectorstore.VectorStore
}

// Config holds server dependencies.
type Config struct {
	RAG   *rag.Service
	Store *vectorstore.VectorStore
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "talent-match-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_documents",
		Description: "Answer a question from the ingested documents. Retrieves the most relevant chunks (optionally scoped to specific document IDs) and returns a rendered context block plus a ready-to-use prompt pair.",
	}, makeQueryDocumentsHandler(cfg.RAG))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "screen_resume",
		Description: "Evaluate a candidate against a job description. Retrieves relevant sections from the resume and the job description independently and returns a sectioned screening context plus a ready-to-use prompt pair.",
	}, makeScreenResumeHandler(cfg.RAG))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_document_chunks",
		Description: "List the stored chunks of an ingested document in order. Useful for inspecting how a document was split.",
	}, makeListChunksHandler(cfg.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete all stored chunks and embeddings for a document.",
	}, makeDeleteDocumentHandler(cfg.Store))

	return &Server{
		server: server,
		rag:    cfg.RAG,
		store:  cfg.Store,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
