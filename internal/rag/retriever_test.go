package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Msparihar/talent-match/internal/vectorstore"
)

// fakeSearcher returns canned results keyed by the scoped document ID and
// records every search it receives.
type fakeSearcher struct {
	resultsByDoc map[string][]vectorstore.SearchResult
	unscoped     []vectorstore.SearchResult
	searches     []vectorstore.SearchOptions
	err          error
}

func (f *fakeSearcher) SearchSimilarChunks(ctx context.Context, query string, opts vectorstore.SearchOptions) ([]vectorstore.SearchResult, error) {
	f.searches = append(f.searches, opts)
	if f.err != nil {
		return nil, f.err
	}
	if len(opts.DocumentIDs) == 1 {
		results := f.resultsByDoc[opts.DocumentIDs[0]]
		if opts.Limit < len(results) {
			results = results[:opts.Limit]
		}
		return results, nil
	}
	return f.unscoped, nil
}

func TestRetrieveContext_Defaults(t *testing.T) {
	searcher := &fakeSearcher{unscoped: []vectorstore.SearchResult{resumeChunk("text", 0.8)}}
	retriever := NewRetriever(searcher, nil)

	result, err := retriever.RetrieveContext(context.Background(), "query", DefaultRetrievalOptions())
	require.NoError(t, err)

	assert.Equal(t, "query", result.Query)
	assert.Len(t, result.Chunks, 1)

	require.Len(t, searcher.searches, 1)
	assert.Equal(t, DefaultTopK, searcher.searches[0].Limit)
	assert.Equal(t, DefaultThreshold, searcher.searches[0].Threshold)
	assert.Nil(t, searcher.searches[0].DocumentIDs)
}

func TestRetrieveContext_EmptyIsNotError(t *testing.T) {
	retriever := NewRetriever(&fakeSearcher{}, nil)

	result, err := retriever.RetrieveContext(context.Background(), "query", DefaultRetrievalOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
}

func TestRetrieveContext_SearchFailure(t *testing.T) {
	retriever := NewRetriever(&fakeSearcher{err: errors.New("store down")}, nil)

	_, err := retriever.RetrieveContext(context.Background(), "query", DefaultRetrievalOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve context")
}

func TestRetrieveResumeContext_IndependentScopedSearches(t *testing.T) {
	searcher := &fakeSearcher{
		resultsByDoc: map[string][]vectorstore.SearchResult{
			"resume-1": {resumeChunk("a", 0.9), resumeChunk("b", 0.8), resumeChunk("c", 0.7), resumeChunk("d", 0.6)},
			"jd-1":     {jdChunk("x", 0.85)},
		},
	}
	retriever := NewRetriever(searcher, nil)

	result, err := retriever.RetrieveResumeContext(context.Background(), "query", "resume-1", "jd-1", DefaultScreeningOptions())
	require.NoError(t, err)

	// Each side has its own TopK budget.
	assert.Len(t, result.ResumeChunks, DefaultScreeningTopK)
	assert.Len(t, result.JobDescriptionChunks, 1)

	require.Len(t, searcher.searches, 2)
	assert.Equal(t, []string{"resume-1"}, searcher.searches[0].DocumentIDs)
	assert.Equal(t, []string{"jd-1"}, searcher.searches[1].DocumentIDs)
	for _, search := range searcher.searches {
		assert.Equal(t, DefaultScreeningTopK, search.Limit)
		assert.Equal(t, DefaultScreeningThreshold, search.Threshold)
	}
}

func TestRetrieveResumeContext_OneSideEmpty(t *testing.T) {
	searcher := &fakeSearcher{
		resultsByDoc: map[string][]vectorstore.SearchResult{
			"resume-1": {resumeChunk("React on two projects.", 0.8)},
		},
	}
	retriever := NewRetriever(searcher, nil)

	result, err := retriever.RetrieveResumeContext(context.Background(), "query", "resume-1", "jd-1", DefaultScreeningOptions())
	require.NoError(t, err)
	assert.Len(t, result.ResumeChunks, 1)
	assert.Empty(t, result.JobDescriptionChunks)
}

func TestRetrieveResumeContext_SearchFailure(t *testing.T) {
	retriever := NewRetriever(&fakeSearcher{err: errors.New("store down")}, nil)

	_, err := retriever.RetrieveResumeContext(context.Background(), "query", "r", "j", DefaultScreeningOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve resume context")
}
