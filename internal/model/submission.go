package model

// SaveDirective creates a new durable sequence from the in-memory history.
type SaveDirective struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LoadDirective restores a durable sequence into the engine.
type LoadDirective struct {
	ID string `json:"id"`
}

// SearchDirective queries stored sequences. An empty query lists the most
// recently modified sequences; ContentSearch switches from fuzzy
// title/description matching to full-text search over thought content.
type SearchDirective struct {
	Query         string `json:"query,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	ContentSearch bool   `json:"contentSearch,omitempty"`
}

// ExportDirective exports a sequence with its thoughts.
type ExportDirective struct {
	ID string `json:"id"`
}

// ImportDirective imports a previously exported bundle under a fresh id.
type ImportDirective struct {
	Data ExportBundle `json:"data"`
}

// Submission is one already-parsed call from the transport collaborator:
// either a thought to append, or exactly one management directive, which
// takes priority over the thought fields for that call.
type Submission struct {
	Thought

	SaveSequence   *SaveDirective   `json:"saveSequence,omitempty"`
	LoadSequence   *LoadDirective   `json:"loadSequence,omitempty"`
	SearchSequence *SearchDirective `json:"searchSequence,omitempty"`
	ExportSequence *ExportDirective `json:"exportSequence,omitempty"`
	ImportSequence *ImportDirective `json:"importSequence,omitempty"`
}

// DirectiveCount returns how many management directives are set on the
// submission. Zero means a plain thought; more than one is ambiguous and
// rejected at validation.
func (s *Submission) DirectiveCount() int {
	n := 0
	if s.SaveSequence != nil {
		n++
	}
	if s.LoadSequence != nil {
		n++
	}
	if s.SearchSequence != nil {
		n++
	}
	if s.ExportSequence != nil {
		n++
	}
	if s.ImportSequence != nil {
		n++
	}
	return n
}
