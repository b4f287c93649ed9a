// Package chunking splits document text into overlapping, sentence-aware
// segments suitable for embedding.
package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TextChunk represents one segment of a document.
type TextChunk struct {
	Text       string // Segment text, trimmed
	Index      int    // Position in document (0, 1, 2...)
	StartChar  int    // Approximate start offset in the trimmed source text
	EndChar    int    // Approximate end offset (EndChar - StartChar == len(Text) + overlap slack)
	TokenCount int    // Coarse estimate, ceil(len/4)
}

// Options controls chunk boundaries. Zero values fall back to the defaults
// below.
type Options struct {
	ChunkSize    int // Maximum characters per chunk
	Overlap      int // Characters of trailing context carried into the next chunk
	MinChunkSize int // Minimum characters before a chunk may be closed or emitted
}

// Default chunking parameters, tuned for resume and job description text.
const (
	DefaultChunkSize    = 800
	DefaultOverlap      = 100
	DefaultMinChunkSize = 100
)

// DefaultOptions returns the standard chunking configuration.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    DefaultChunkSize,
		Overlap:      DefaultOverlap,
		MinChunkSize: DefaultMinChunkSize,
	}
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Overlap < 0 {
		o.Overlap = DefaultOverlap
	}
	if o.MinChunkSize <= 0 {
		o.MinChunkSize = DefaultMinChunkSize
	}
	return o
}

// sentenceSplitter matches runs of text terminated by '.', '!' or '?'.
// Abbreviations and decimal numbers will split incorrectly; acceptable for
// this domain.
var sentenceSplitter = regexp.MustCompile(`[^.!?]+[.!?]+`)

// EstimateTokenCount approximates the token count of text as ceil(len/4).
// This is a heuristic, not a tokenizer.
func EstimateTokenCount(text string) int {
	return (len(text) + 3) / 4
}

// splitIntoSentences breaks text at sentence boundaries. Text with no
// terminator at all is returned as a single sentence.
func splitIntoSentences(text string) []string {
	matches := sentenceSplitter.FindAllString(text, -1)
	if matches == nil {
		matches = []string{text}
	}
	sentences := make([]string, 0, len(matches))
	for _, s := range matches {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// ChunkText splits text into overlapping sentence-aware chunks.
//
// Empty or whitespace-only input yields no chunks. Input at or under
// ChunkSize yields exactly one chunk covering the trimmed text. Otherwise
// sentences are accumulated greedily; when the next sentence would push the
// buffer past ChunkSize and the buffer already holds MinChunkSize
// characters, the chunk is closed and the next buffer is seeded with the
// trailing Overlap characters of the closed chunk. A trailing remainder
// shorter than MinChunkSize is dropped.
func ChunkText(text string, opts Options) []TextChunk {
	opts = opts.withDefaults()

	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil
	}

	if len(cleaned) <= opts.ChunkSize {
		return []TextChunk{{
			Text:       cleaned,
			Index:      0,
			StartChar:  0,
			EndChar:    len(cleaned),
			TokenCount: EstimateTokenCount(cleaned),
		}}
	}

	sentences := splitIntoSentences(cleaned)

	var chunks []TextChunk
	var current string
	startChar := 0

	for _, sentence := range sentences {
		potential := sentence
		if current != "" {
			potential = current + " " + sentence
		}

		if len(potential) > opts.ChunkSize && len(current) >= opts.MinChunkSize {
			closed := strings.TrimSpace(current)
			chunks = append(chunks, TextChunk{
				Text:       closed,
				Index:      len(chunks),
				StartChar:  startChar,
				EndChar:    startChar + len(closed),
				TokenCount: EstimateTokenCount(closed),
			})

			// Seed the next buffer with trailing overlap context.
			overlapText := current
			if len(overlapText) > opts.Overlap {
				cut := len(overlapText) - opts.Overlap
				// Keep the cut on a rune boundary so multi-byte
				// characters are never split.
				for cut < len(overlapText) && !utf8.RuneStart(overlapText[cut]) {
					cut++
				}
				overlapText = overlapText[cut:]
			}
			startChar += len(closed) - len(overlapText)
			current = overlapText + " " + sentence
		} else {
			current = potential
		}
	}

	if final := strings.TrimSpace(current); len(final) >= opts.MinChunkSize {
		chunks = append(chunks, TextChunk{
			Text:       final,
			Index:      len(chunks),
			StartChar:  startChar,
			EndChar:    startChar + len(final),
			TokenCount: EstimateTokenCount(final),
		})
	}

	return chunks
}

// DocumentInput is one document to be chunked in a batch.
type DocumentInput struct {
	ID      string
	Content string
	Type    string
}

// DocumentChunk is a chunk enriched with its source document identity.
type DocumentChunk struct {
	TextChunk
	DocumentID   string
	DocumentType string
}

// ChunkDocuments chunks each document independently and tags every chunk
// with its document ID and type. There is no cross-document merging.
func ChunkDocuments(docs []DocumentInput, opts Options) []DocumentChunk {
	var all []DocumentChunk
	for _, doc := range docs {
		for _, chunk := range ChunkText(doc.Content, opts) {
			all = append(all, DocumentChunk{
				TextChunk:    chunk,
				DocumentID:   doc.ID,
				DocumentType: doc.Type,
			})
		}
	}
	return all
}
