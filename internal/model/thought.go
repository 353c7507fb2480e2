// Package model defines the core thought and sequence data types.
package model

import "time"

// Thought types. A plain step has no type; hypotheses and verifications
// participate in the verification workflow.
const (
	ThoughtTypeHypothesis   = "hypothesis"
	ThoughtTypeVerification = "verification"
)

// ValidThoughtTypes are the allowed thought type values.
var ValidThoughtTypes = map[string]bool{
	ThoughtTypeHypothesis:   true,
	ThoughtTypeVerification: true,
}

// Verification results.
const (
	VerificationConfirmed = "confirmed"
	VerificationRefuted   = "refuted"
	VerificationPartial   = "partial"
	VerificationPending   = "pending"
)

// ValidVerificationResults are the allowed verification result values.
var ValidVerificationResults = map[string]bool{
	VerificationConfirmed: true,
	VerificationRefuted:   true,
	VerificationPartial:   true,
	VerificationPending:   true,
}

// Thought is one numbered reasoning step. Zero-valued optional fields
// (RevisesThought, BranchFromThought, BranchID, Type, VerificationResult)
// mean "absent"; all numbers are positive when present.
type Thought struct {
	Number             int    `json:"thoughtNumber"`
	Content            string `json:"thought"`
	IsRevision         bool   `json:"isRevision,omitempty"`
	RevisesThought     int    `json:"revisesThought,omitempty"`
	BranchFromThought  int    `json:"branchFromThought,omitempty"`
	BranchID           string `json:"branchId,omitempty"`
	Type               string `json:"thoughtType,omitempty"`
	VerificationResult string `json:"verificationResult,omitempty"`
	RelatedTo          []int  `json:"relatedTo,omitempty"`
	TotalThoughts      int    `json:"totalThoughts"`
	NextThoughtNeeded  bool   `json:"nextThoughtNeeded"`
}

// ThoughtRecord is a durably stored thought row.
type ThoughtRecord struct {
	Thought
	ID         string    `json:"id"`
	SequenceID string    `json:"sequenceId"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}
