package model

// VerificationWorkflow is the derived hypothesis/verification state,
// recomputed from the thought store on every accepted submission.
type VerificationWorkflow struct {
	Confirmed            int   `json:"confirmed"`
	Refuted              int   `json:"refuted"`
	Partial              int   `json:"partial"`
	Pending              int   `json:"pending"`
	UnverifiedHypotheses []int `json:"unverifiedHypotheses"`
}

// ThoughtResult is returned when a submitted thought is accepted.
type ThoughtResult struct {
	ThoughtNumber        int                  `json:"thoughtNumber"`
	TotalThoughts        int                  `json:"totalThoughts"`
	NextThoughtNeeded    bool                 `json:"nextThoughtNeeded"`
	Branches             []string             `json:"branches"`
	ThoughtHistoryLength int                  `json:"thoughtHistoryLength"`
	Verification         VerificationWorkflow `json:"verificationWorkflow"`
	// Warning is set when the in-memory mutation succeeded but the durable
	// write did not; the in-memory and durable copies have diverged.
	Warning string `json:"warning,omitempty"`
}

// DirectiveResult is returned when a management directive is handled.
type DirectiveResult struct {
	Action        string          `json:"action"`
	SequenceID    string          `json:"sequenceId,omitempty"`
	ThoughtsSaved int             `json:"thoughtsSaved,omitempty"`
	ThoughtsRead  int             `json:"thoughtsLoaded,omitempty"`
	Sequences     []Sequence      `json:"sequences,omitempty"`
	Bundle        *ExportBundle   `json:"bundle,omitempty"`
	Thoughts      []ThoughtRecord `json:"thoughts,omitempty"`
}

// ErrorResult is the structured failure shape handed back to the transport
// collaborator.
type ErrorResult struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	IsError bool   `json:"isError"`
}

// NewErrorResult wraps an error message in the failure shape.
func NewErrorResult(msg string) *ErrorResult {
	return &ErrorResult{Error: msg, Status: "failed", IsError: true}
}
