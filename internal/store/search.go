package store

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// SearchParams holds parameters for searching sequences.
type SearchParams struct {
	Query         string
	Limit         int
	ContentSearch bool
}

const defaultSearchLimit = 20

// Fuzzy score tiers. Candidates at or below the discard threshold are
// dropped before ranking.
const (
	scoreExact       = 100
	scoreSubstring   = 80
	scoreWordPrefix  = 60
	scoreLCSMax      = 40
	scoreDiscardAtOr = 20
)

// ListSequences returns the most recently modified sequences.
func (s *SQLiteStore) ListSequences(ctx context.Context, limit int) ([]model.Sequence, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, status, created, last_modified, thought_count
		 FROM sequences ORDER BY last_modified DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seqs []model.Sequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}

// Search finds sequences matching the query. With ContentSearch it returns
// sequences containing a full-text match in any thought, most recently
// modified first; otherwise it fuzzy-scores titles and descriptions.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Sequence, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if p.Query == "" {
		return s.ListSequences(ctx, limit)
	}
	if p.ContentSearch {
		return s.searchContent(ctx, p.Query, limit)
	}
	return s.searchFuzzy(ctx, p.Query, limit)
}

func (s *SQLiteStore) searchContent(ctx context.Context, query string, limit int) ([]model.Sequence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT sq.id, sq.title, sq.description, sq.status, sq.created,
		        sq.last_modified, sq.thought_count
		 FROM sequences sq
		 JOIN thoughts t ON t.sequence_id = sq.id
		 JOIN thoughts_fts f ON f.rowid = t.rowid
		 WHERE thoughts_fts MATCH ?
		 ORDER BY sq.last_modified DESC
		 LIMIT ?`, ftsQuote(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seqs []model.Sequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}

// ftsQuote wraps the query as an FTS5 string literal so user input is
// matched verbatim instead of being parsed as match syntax.
func ftsQuote(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

func (s *SQLiteStore) searchFuzzy(ctx context.Context, query string, limit int) ([]model.Sequence, error) {
	// Fuzzy scoring runs in memory over the full catalog; sequence counts
	// stay small enough that a scan beats maintaining a trigram index.
	all, err := s.ListSequences(ctx, math.MaxInt32)
	if err != nil {
		return nil, err
	}

	q := normalizeText(query)
	type scored struct {
		seq   model.Sequence
		score int
	}
	var candidates []scored
	for _, seq := range all {
		score := FuzzyScore(q, normalizeText(seq.Title))
		if seq.Description != "" {
			if ds := FuzzyScore(q, normalizeText(seq.Description)); ds > score {
				score = ds
			}
		}
		if score <= scoreDiscardAtOr {
			continue
		}
		candidates = append(candidates, scored{seq: seq, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].seq.LastModified.After(candidates[j].seq.LastModified)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	seqs := make([]model.Sequence, len(candidates))
	for i, c := range candidates {
		seqs[i] = c.seq
	}
	return seqs, nil
}

// FuzzyScore rates how well a normalized query matches a normalized target
// on a 0-100 scale: exact match, substring containment, word-prefix match,
// then a longest-common-subsequence fallback capped at 40.
func FuzzyScore(query, target string) int {
	if query == "" || target == "" {
		return 0
	}
	if query == target {
		return scoreExact
	}
	if strings.Contains(target, query) {
		return scoreSubstring
	}
	for _, word := range strings.Fields(target) {
		if wordPrefixMatch(word, query) {
			return scoreWordPrefix
		}
	}
	qr, tr := []rune(query), []rune(target)
	lcs := lcsLength(qr, tr)
	return int(math.Round(2 * float64(lcs) / float64(len(qr)+len(tr)) * scoreLCSMax))
}

// wordPrefixMatch reports whether the query lines up with the front of a
// target word. One trailing rune of the query may diverge, so near-stems
// like "strategy" against "strategic" still rank as prefix matches.
func wordPrefixMatch(word, query string) bool {
	wr, qr := []rune(word), []rune(query)
	n := 0
	for n < len(wr) && n < len(qr) && wr[n] == qr[n] {
		n++
	}
	return n >= 2 && n >= len(qr)-1
}
