// Package mcp exposes the resume-screening RAG core over the Model Context Protocol.
package mcp

// QueryDocumentsInput defines the input parameters for the query_documents tool.
type QueryDocumentsInput struct {
	// Query is the semantic search query.
	Query string `json:"query" jsonschema:"required,description=The question to answer from the ingested documents"`
	// TopK is the maximum number of chunks to retrieve.
	TopK int `json:"top_k,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Maximum number of chunks to retrieve"`
	// DocumentIDs optionally restricts retrieval to specific documents.
	DocumentIDs []string `json:"document_ids,omitempty" jsonschema:"description=Restrict retrieval to these document IDs"`
}

// QueryDocumentsOutput contains the assembled retrieval result.
type QueryDocumentsOutput struct {
	// Context is the rendered context block built from the retrieved chunks.
	Context string `json:"context"`
	// SystemPrompt is the system prompt to pair with UserMessage.
	SystemPrompt string `json:"system_prompt"`
	// UserMessage is the user turn with the context and question embedded.
	UserMessage string `json:"user_message"`
	// RelevantChunks is the number of chunks that grounded the context.
	RelevantChunks int `json:"relevant_chunks"`
}

// ScreenResumeInput defines the input parameters for the screen_resume tool.
type ScreenResumeInput struct {
	// Question is the screening question to answer.
	Question string `json:"question" jsonschema:"required,description=The screening question about the candidate"`
	// ResumeID identifies the candidate's resume document.
	ResumeID string `json:"resume_id" jsonschema:"required,description=Document ID of the candidate resume"`
	// JobDescriptionID identifies the job description document.
	JobDescriptionID string `json:"job_description_id" jsonschema:"required,description=Document ID of the job description"`
}

// ScreenResumeOutput contains the dual-document screening result.
type ScreenResumeOutput struct {
	// Context is the sectioned resume/job-description context block.
	Context string `json:"context"`
	// SystemPrompt is the resume-screening system prompt.
	SystemPrompt string `json:"system_prompt"`
	// UserMessage is the user turn with the context and question embedded.
	UserMessage string `json:"user_message"`
	// RelevantChunks counts retrieved chunks across both documents.
	RelevantChunks int `json:"relevant_chunks"`
}

// ListDocumentChunksInput defines the input parameters for the list_document_chunks tool.
type ListDocumentChunksInput struct {
	// DocumentID is the document whose chunks to list.
	DocumentID string `json:"document_id" jsonschema:"required,description=The document ID whose chunks to list"`
}

// ChunkSummary describes one stored chunk without its embedding.
type ChunkSummary struct {
	// ID is the chunk's point ID in the vector store.
	ID string `json:"id"`
	// Index is the chunk's position within its document.
	Index int `json:"index"`
	// Text is the chunk content.
	Text string `json:"text"`
	// TokenCount is the estimated token count of the chunk.
	TokenCount int `json:"token_count"`
}

// ListDocumentChunksOutput contains a document's chunks in order.
type ListDocumentChunksOutput struct {
	// DocumentID echoes the requested document.
	DocumentID string `json:"document_id"`
	// FileName is the source file name, empty when the document has no chunks.
	FileName string `json:"file_name,omitempty"`
	// Chunks lists the document's chunks ordered by index.
	Chunks []ChunkSummary `json:"chunks"`
	// Count is the number of chunks.
	Count int `json:"count"`
}

// DeleteDocumentInput defines the input parameters for the delete_document tool.
type DeleteDocumentInput struct {
	// DocumentID is the document whose chunks to delete.
	DocumentID string `json:"document_id" jsonschema:"required,description=The document ID whose chunks to delete"`
}

// DeleteDocumentOutput confirms the deletion.
type DeleteDocumentOutput struct {
	// DocumentID echoes the deleted document.
	DocumentID string `json:"document_id"`
	// Deleted is true when the delete completed.
	Deleted bool `json:"deleted"`
}
