package rag

import (
	"fmt"
	"strings"

	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// Sentinel strings rendered when retrieval produced nothing. Downstream
// generation must handle these by acknowledging missing information rather
// than fabricating an answer.
const (
	NoContextSentinel         = "No relevant context found."
	NoDocumentContextSentinel = "No relevant context found in the documents."
)

// chunkSeparator joins rendered chunks in the generic context block.
const chunkSeparator = "\n\n---\n\n"

// resumeScreeningSystemPrompt instructs the model to answer strictly from
// the provided context.
const resumeScreeningSystemPrompt = `You are an expert resume screening assistant. Your role is to help recruiters evaluate candidates by answering questions about their resume in relation to a job description.

**Instructions:**
1. Answer questions based ONLY on the provided resume and job description context
2. Be specific and cite relevant sections when answering
3. If information is not available in the context, clearly state "This information is not mentioned in the resume/job description"
4. Be objective and professional in your assessments
5. For yes/no questions, provide a clear answer followed by supporting evidence
6. Highlight both strengths and potential concerns when relevant

**Context Format:**
You will receive relevant sections from both the resume and job description. Use these to answer the user's questions accurately.`

// FormattedPrompt is the system/user message pair handed to a generation call.
type FormattedPrompt struct {
	SystemPrompt string
	UserMessage  string
}

// documentTypeLabel maps a stored document type to its display label.
func documentTypeLabel(docType vectorstore.DocumentType) string {
	if docType == vectorstore.DocumentTypeResume {
		return "Resume"
	}
	return "Job Description"
}

// BuildContext renders retrieved chunks into a numbered context block with
// provenance (document label, file name, relevance score).
func BuildContext(chunks []vectorstore.SearchResult) string {
	if len(chunks) == 0 {
		return NoContextSentinel
	}

	formatted := make([]string, len(chunks))
	for i, chunk := range chunks {
		fileName := chunk.DocumentFileName
		if fileName == "" {
			fileName = "Unknown"
		}
		formatted[i] = fmt.Sprintf("[%d] %s (%s):\n%s\n(Relevance: %.1f%%)",
			i+1, documentTypeLabel(chunk.DocumentType), fileName, chunk.ChunkText, chunk.Similarity*100)
	}

	return strings.Join(formatted, chunkSeparator)
}

// BuildResumeScreeningContext renders the dual-document context with one
// labeled section per document. A section whose chunk list is empty is
// omitted entirely, header included.
func BuildResumeScreeningContext(resumeChunks, jobDescriptionChunks []vectorstore.SearchResult) string {
	if len(resumeChunks) == 0 && len(jobDescriptionChunks) == 0 {
		return NoDocumentContextSentinel
	}

	var b strings.Builder

	if len(resumeChunks) > 0 {
		b.WriteString("## RELEVANT RESUME SECTIONS:\n\n")
		for i, chunk := range resumeChunks {
			fmt.Fprintf(&b, "[Resume-%d] %s\n\n", i+1, chunk.ChunkText)
		}
	}

	if len(jobDescriptionChunks) > 0 {
		b.WriteString("## RELEVANT JOB DESCRIPTION SECTIONS:\n\n")
		for i, chunk := range jobDescriptionChunks {
			fmt.Fprintf(&b, "[JD-%d] %s\n\n", i+1, chunk.ChunkText)
		}
	}

	return b.String()
}

// FormatMessageWithContext wraps the context block and the user's literal
// question into a single user turn. An empty systemPrompt selects the
// default resume-screening prompt.
func FormatMessageWithContext(userMessage, context, systemPrompt string) FormattedPrompt {
	if systemPrompt == "" {
		systemPrompt = resumeScreeningSystemPrompt
	}

	formatted := fmt.Sprintf(`%s

---

**User Question:** %s

Please answer based on the context provided above.`, context, userMessage)

	return FormattedPrompt{
		SystemPrompt: systemPrompt,
		UserMessage:  formatted,
	}
}
