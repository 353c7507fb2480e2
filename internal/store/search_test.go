package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func TestFuzzyScoreTiers(t *testing.T) {
	assert.Equal(t, 100, FuzzyScore("strategy", "strategy"))
	assert.Equal(t, 80, FuzzyScore("strategy", "overall strategy notes"))
	assert.Equal(t, 60, FuzzyScore("strategy", "strategic plan"))

	// LCS fallback: "plan" vs "deployment checklist" shares p,l,n.
	lcs := FuzzyScore("plan", "deployment checklist")
	assert.Greater(t, lcs, 0)
	assert.LessOrEqual(t, lcs, 40)

	assert.Equal(t, 0, FuzzyScore("", "anything"))
	assert.Equal(t, 0, FuzzyScore("query", ""))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "cafe", normalizeText("Café"))
	assert.Equal(t, "strategiya", normalizeText("Стратегия"))
	assert.Equal(t, "uber plan", normalizeText("Über Plan"))
}

func TestLCSLength(t *testing.T) {
	assert.Equal(t, 3, lcsLength([]rune("abc"), []rune("abc")))
	assert.Equal(t, 2, lcsLength([]rune("axc"), []rune("abc")))
	assert.Equal(t, 0, lcsLength([]rune(""), []rune("abc")))
	assert.Equal(t, 4, lcsLength([]rune("plan"), []rune("pwlxayn")))
}

func TestListSequencesMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.CreateSequence(ctx, "older", "")
	require.NoError(t, err)
	b, err := s.CreateSequence(ctx, "newer", "")
	require.NoError(t, err)
	require.NoError(t, s.TouchSequence(ctx, b.ID, 1, model.SequenceActive))
	require.NoError(t, s.TouchSequence(ctx, a.ID, 1, model.SequenceActive))

	seqs, err := s.ListSequences(ctx, 10)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "older", seqs[0].Title) // touched last
}

func TestFuzzySearchDeterminism(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateSequence(ctx, "Strategic Plan", "")
	require.NoError(t, err)
	_, err = s.CreateSequence(ctx, "Strategy", "")
	require.NoError(t, err)
	_, err = s.CreateSequence(ctx, "Grocery List", "")
	require.NoError(t, err)

	seqs, err := s.Search(ctx, SearchParams{Query: "strategy", Limit: 10})
	require.NoError(t, err)
	require.Len(t, seqs, 2, "unrelated titles score at or below the discard threshold")
	assert.Equal(t, "Strategy", seqs[0].Title)
	assert.Equal(t, "Strategic Plan", seqs[1].Title)
}

func TestFuzzySearchMatchesDescription(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateSequence(ctx, "Untitled", "quarterly strategy review")
	require.NoError(t, err)

	seqs, err := s.Search(ctx, SearchParams{Query: "strategy", Limit: 10})
	require.NoError(t, err)
	require.Len(t, seqs, 1)
}

func TestFuzzySearchNormalizesQuery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateSequence(ctx, "Strategiya 2026", "")
	require.NoError(t, err)

	// Cyrillic input matches the Latin-normalized corpus.
	seqs, err := s.Search(ctx, SearchParams{Query: "Стратегия", Limit: 10})
	require.NoError(t, err)
	require.Len(t, seqs, 1)
}

func TestFuzzySearchLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, title := range []string{"plan a", "plan b", "plan c"} {
		_, err := s.CreateSequence(ctx, title, "")
		require.NoError(t, err)
	}

	seqs, err := s.Search(ctx, SearchParams{Query: "plan", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, seqs, 2)
}

func TestContentSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	match, err := s.CreateSequence(ctx, "One", "")
	require.NoError(t, err)
	other, err := s.CreateSequence(ctx, "Two", "")
	require.NoError(t, err)

	_, err = s.SaveThought(ctx, model.Thought{
		Number: 1, Content: "the connection pool is exhausted", TotalThoughts: 1,
	}, match.ID)
	require.NoError(t, err)
	_, err = s.SaveThought(ctx, model.Thought{
		Number: 1, Content: "unrelated musing", TotalThoughts: 1,
	}, other.ID)
	require.NoError(t, err)

	seqs, err := s.Search(ctx, SearchParams{Query: "connection pool", Limit: 10, ContentSearch: true})
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.Equal(t, match.ID, seqs[0].ID)
}

func TestContentSearchQuotesQuery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seq, err := s.CreateSequence(ctx, "Quoting", "")
	require.NoError(t, err)
	_, err = s.SaveThought(ctx, model.Thought{
		Number: 1, Content: `she said "retry with backoff" twice`, TotalThoughts: 1,
	}, seq.ID)
	require.NoError(t, err)

	// Raw FTS operators in the query must not cause a syntax error.
	_, err = s.Search(ctx, SearchParams{Query: `retry AND NOT`, Limit: 10, ContentSearch: true})
	require.NoError(t, err)

	seqs, err := s.Search(ctx, SearchParams{Query: `"retry with backoff"`, Limit: 10, ContentSearch: true})
	require.NoError(t, err)
	assert.Len(t, seqs, 1)
}

func TestSearchEmptyQueryLists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateSequence(ctx, "anything", "")
	require.NoError(t, err)

	seqs, err := s.Search(ctx, SearchParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, seqs, 1)
}
