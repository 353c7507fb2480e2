package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// Content bounds in Unicode code points, counted after control characters
// are stripped.
const (
	MinContentLength = 1
	MaxContentLength = 10000
	MaxBranchIDLen   = 100
	MaxRelatedTo     = 50
	MaxSearchLimit   = 50
)

// SanitizeContent strips control characters from thought content. Newlines
// and tabs survive; everything else in the control classes is dropped.
func SanitizeContent(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// validateThought checks a sanitized thought submission against the current
// store state. It is pure: no check mutates the store. Checks run in order
// (bounds, logical consistency, referential integrity) and fail fast with a
// distinct error per check.
func validateThought(t model.Thought, store *ThoughtStore) error {
	if t.Number < 1 {
		return &ValidationError{Field: "thoughtNumber", Reason: "must be a positive integer"}
	}
	if n := utf8.RuneCountInString(t.Content); n < MinContentLength || n > MaxContentLength {
		return &ValidationError{
			Field:  "thought",
			Reason: fmt.Sprintf("length must be %d-%d characters, got %d", MinContentLength, MaxContentLength, n),
		}
	}
	if t.TotalThoughts < 1 {
		return &ValidationError{Field: "totalThoughts", Reason: "must be a positive integer"}
	}
	if t.RevisesThought < 0 {
		return &ValidationError{Field: "revisesThought", Reason: "must be a positive integer"}
	}
	if t.BranchFromThought < 0 {
		return &ValidationError{Field: "branchFromThought", Reason: "must be a positive integer"}
	}
	if t.BranchID != "" && len(t.BranchID) > MaxBranchIDLen {
		return &ValidationError{Field: "branchId", Reason: fmt.Sprintf("must be 1-%d characters", MaxBranchIDLen)}
	}
	if t.Type != "" && !model.ValidThoughtTypes[t.Type] {
		return &ValidationError{Field: "thoughtType", Reason: fmt.Sprintf("unknown type %q", t.Type)}
	}
	if t.VerificationResult != "" && !model.ValidVerificationResults[t.VerificationResult] {
		return &ValidationError{Field: "verificationResult", Reason: fmt.Sprintf("unknown result %q", t.VerificationResult)}
	}
	if len(t.RelatedTo) > MaxRelatedTo {
		return &ValidationError{Field: "relatedTo", Reason: fmt.Sprintf("at most %d entries", MaxRelatedTo)}
	}
	for _, n := range t.RelatedTo {
		if n < 1 {
			return &ValidationError{Field: "relatedTo", Reason: "entries must be positive integers"}
		}
	}

	// Logical consistency.
	if t.IsRevision && t.RevisesThought == 0 {
		return &ValidationError{Field: "revisesThought", Reason: "required when isRevision is set"}
	}
	if !t.IsRevision && t.RevisesThought != 0 {
		return &ValidationError{Field: "isRevision", Reason: "required when revisesThought is set"}
	}
	if t.BranchFromThought != 0 && t.BranchID == "" {
		return &ValidationError{Field: "branchId", Reason: "required when branchFromThought is set"}
	}
	if t.BranchID != "" && t.BranchFromThought == 0 && !store.HasBranch(t.BranchID) {
		return &ValidationError{Field: "branchFromThought", Reason: "required when starting a new branch"}
	}
	if t.VerificationResult != "" && t.Type != model.ThoughtTypeVerification {
		return &ValidationError{Field: "verificationResult", Reason: "only legal on verification thoughts"}
	}

	// Referential integrity against the line being mutated. A branch that
	// does not exist yet is checked against the seed it would copy, so
	// references to seeded thoughts hold and seeded numbers stay unique.
	line := store.AllInLine(t.BranchID)
	if t.BranchID != "" && !store.HasBranch(t.BranchID) {
		if found, _ := numberExists(store.AllInLine(""), t.BranchFromThought); !found {
			return &NotFoundError{Kind: "thought", Ref: fmt.Sprintf("branchFromThought %d", t.BranchFromThought)}
		}
		line = store.Seed(t.BranchFromThought)
	}

	if t.IsRevision {
		if found, _ := numberExists(line, t.RevisesThought); !found {
			return &NotFoundError{Kind: "thought", Ref: fmt.Sprintf("revisesThought %d", t.RevisesThought)}
		}
	} else {
		if _, nonRevision := numberExists(line, t.Number); nonRevision {
			return &ValidationError{
				Field:  "thoughtNumber",
				Reason: fmt.Sprintf("thought %d already exists in this line", t.Number),
			}
		}
	}

	if t.Type == model.ThoughtTypeVerification {
		for _, n := range t.RelatedTo {
			if !hypothesisExists(line, n) {
				return &NotFoundError{Kind: "hypothesis", Ref: fmt.Sprintf("relatedTo %d", n)}
			}
		}
	}

	return nil
}

func hypothesisExists(line []model.Thought, number int) bool {
	for _, t := range line {
		if t.Number == number && t.Type == model.ThoughtTypeHypothesis {
			return true
		}
	}
	return false
}

// validateDirectives rejects submissions carrying more than one management
// directive or a directive with out-of-range parameters.
func validateDirectives(sub *model.Submission) error {
	if sub.DirectiveCount() > 1 {
		return &ValidationError{Field: "submission", Reason: "directives are mutually exclusive"}
	}
	if sub.SaveSequence != nil && strings.TrimSpace(sub.SaveSequence.Title) == "" {
		return &ValidationError{Field: "saveSequence.title", Reason: "must not be empty"}
	}
	if sub.LoadSequence != nil && sub.LoadSequence.ID == "" {
		return &ValidationError{Field: "loadSequence.id", Reason: "must not be empty"}
	}
	if sub.SearchSequence != nil && sub.SearchSequence.Limit > MaxSearchLimit {
		return &LimitExceededError{Limit: "searchSequence.limit", Max: MaxSearchLimit, Reason: "requested limit too large"}
	}
	if sub.ExportSequence != nil && sub.ExportSequence.ID == "" {
		return &ValidationError{Field: "exportSequence.id", Reason: "must not be empty"}
	}
	if sub.ImportSequence != nil && sub.ImportSequence.Data.Sequence.Title == "" {
		return &ValidationError{Field: "importSequence.data", Reason: "bundle has no sequence title"}
	}
	return nil
}
