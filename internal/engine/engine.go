package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nalyk/sequentialthinking/internal/config"
	"github.com/nalyk/sequentialthinking/internal/model"
	"github.com/nalyk/sequentialthinking/internal/store"
)

// Engine owns one reasoning session: the in-memory thought state, the
// configured bounds, and the durable store the active sequence mirrors to.
// One submission runs to completion before the next is accepted; callers
// targeting different sequences use separate Engine instances.
type Engine struct {
	mu     sync.Mutex
	store  *ThoughtStore
	limits config.Limits
	db     store.Store
	logger *zap.Logger

	// active is the durable sequence this session mirrors to, nil while the
	// session is memory-only.
	active        *model.Sequence
	totalThoughts int
}

// New creates an engine. db may be nil for a memory-only session; limits
// must already be validated, but are re-checked here so a zero limit can
// never reach the eviction manager.
func New(db store.Store, limits config.Limits, logger *zap.Logger) (*Engine, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  NewThoughtStore(),
		limits: limits,
		db:     db,
		logger: logger,
	}, nil
}

// ActiveSequenceID returns the id of the durable sequence backing the
// session, or "" while memory-only.
func (e *Engine) ActiveSequenceID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ""
	}
	return e.active.ID
}

// Submit processes one submission to completion: a management directive if
// present, otherwise validate → mutate → prune → persist → project. The
// result is a *model.DirectiveResult or a *model.ThoughtResult. On error no
// in-memory mutation has been applied; a durable write that fails after an
// applied mutation is reported via ThoughtResult.Warning instead.
func (e *Engine) Submit(ctx context.Context, sub *model.Submission) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateDirectives(sub); err != nil {
		return nil, err
	}

	switch {
	case sub.SaveSequence != nil:
		return e.saveSequence(ctx, sub.SaveSequence)
	case sub.LoadSequence != nil:
		return e.loadSequence(ctx, sub.LoadSequence)
	case sub.SearchSequence != nil:
		return e.searchSequences(ctx, sub.SearchSequence)
	case sub.ExportSequence != nil:
		return e.exportSequence(ctx, sub.ExportSequence)
	case sub.ImportSequence != nil:
		return e.importSequence(ctx, sub.ImportSequence)
	}

	return e.submitThought(ctx, sub.Thought)
}

func (e *Engine) submitThought(ctx context.Context, t model.Thought) (*model.ThoughtResult, error) {
	t.Content = SanitizeContent(t.Content)

	if err := validateThought(t, e.store); err != nil {
		return nil, err
	}

	// A branch must be able to hold its own seed; otherwise the fork point
	// would be trimmed away on the very first prune.
	if t.BranchID != "" && !e.store.HasBranch(t.BranchID) {
		if seed := e.store.SeedLength(t.BranchFromThought); seed >= e.limits.MaxThoughtsPerBranch {
			return nil, &LimitExceededError{
				Limit:  "maxThoughtsPerBranch",
				Max:    e.limits.MaxThoughtsPerBranch,
				Reason: fmt.Sprintf("branch seeded from thought %d would copy %d thoughts", t.BranchFromThought, seed),
			}
		}
	}

	if t.IsRevision {
		e.store.ReviseInPlace(t)
	} else {
		e.store.Append(t)
	}

	if t.TotalThoughts > e.totalThoughts {
		e.totalThoughts = t.TotalThoughts
	}
	if t.Number > e.totalThoughts {
		e.totalThoughts = t.Number
	}

	Prune(e.store, e.limits, t.BranchID)

	warning := e.persistThought(ctx, t)

	result := &model.ThoughtResult{
		ThoughtNumber:        t.Number,
		TotalThoughts:        e.totalThoughts,
		NextThoughtNeeded:    t.NextThoughtNeeded,
		Branches:             e.store.BranchNames(),
		ThoughtHistoryLength: e.store.Len(),
		Verification:         SnapshotVerification(e.store.AllInLine(t.BranchID)),
		Warning:              warning,
	}
	return result, nil
}

// persistThought mirrors an accepted thought to the durable store when a
// sequence is active. The in-memory mutation is already applied; a durable
// failure is returned as a warning string, never rolled back.
func (e *Engine) persistThought(ctx context.Context, t model.Thought) string {
	if e.active == nil {
		return ""
	}

	if _, err := e.db.SaveThought(ctx, t, e.active.ID); err != nil {
		perr := &PersistenceError{Op: "save thought", Err: err}
		e.logger.Warn("durable write failed, in-memory state is ahead of storage",
			zap.String("sequence_id", e.active.ID),
			zap.Int("thought_number", t.Number),
			zap.Error(err))
		return perr.Error()
	}

	e.active.ThoughtCount++
	status := sequenceStatus(t)
	e.active.Status = status

	if err := e.db.TouchSequence(ctx, e.active.ID, e.active.ThoughtCount, status); err != nil {
		perr := &PersistenceError{Op: "touch sequence", Err: err}
		e.logger.Warn("sequence metadata update failed",
			zap.String("sequence_id", e.active.ID),
			zap.Error(err))
		return perr.Error()
	}
	return ""
}

// sequenceStatus derives the durable status an accepted thought implies:
// completed when the thought ends the sequence, active otherwise.
func sequenceStatus(t model.Thought) string {
	if !t.NextThoughtNeeded {
		return model.SequenceCompleted
	}
	return model.SequenceActive
}

func (e *Engine) saveSequence(ctx context.Context, d *model.SaveDirective) (*model.DirectiveResult, error) {
	if e.db == nil {
		return nil, &PersistenceError{Op: "save sequence", Err: errors.New("no durable store configured")}
	}

	seq, err := e.db.CreateSequence(ctx, d.Title, d.Description)
	if err != nil {
		return nil, &PersistenceError{Op: "create sequence", Err: err}
	}

	saved := 0
	status := model.SequenceActive
	for _, t := range e.store.AllInLine("") {
		if _, err := e.db.SaveThought(ctx, t, seq.ID); err != nil {
			return nil, &PersistenceError{Op: "save thought", Err: err}
		}
		saved++
		status = sequenceStatus(t)
	}
	for _, name := range e.store.BranchNames() {
		for _, t := range e.store.AllInLine(name) {
			if t.BranchID == "" {
				// Seeded copy of a main-line thought; already saved above.
				continue
			}
			if _, err := e.db.SaveThought(ctx, t, seq.ID); err != nil {
				return nil, &PersistenceError{Op: "save thought", Err: err}
			}
			saved++
			status = sequenceStatus(t)
		}
	}

	if saved > 0 {
		if err := e.db.TouchSequence(ctx, seq.ID, saved, status); err != nil {
			return nil, &PersistenceError{Op: "touch sequence", Err: err}
		}
	}
	seq.ThoughtCount = saved
	seq.Status = status
	e.active = seq

	e.logger.Info("sequence saved",
		zap.String("sequence_id", seq.ID),
		zap.Int("thoughts_saved", saved))

	return &model.DirectiveResult{
		Action:        "sequence_saved",
		SequenceID:    seq.ID,
		ThoughtsSaved: saved,
	}, nil
}

func (e *Engine) loadSequence(ctx context.Context, d *model.LoadDirective) (*model.DirectiveResult, error) {
	if e.db == nil {
		return nil, &PersistenceError{Op: "load sequence", Err: errors.New("no durable store configured")}
	}

	seq, err := e.db.LoadSequence(ctx, d.ID)
	if err != nil {
		if errors.Is(err, store.ErrSequenceNotFound) {
			return nil, &NotFoundError{Kind: "sequence", Ref: d.ID}
		}
		return nil, &PersistenceError{Op: "load sequence", Err: err}
	}
	records, err := e.db.LoadThoughts(ctx, seq.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "load thoughts", Err: err}
	}

	// Replay the log in submission order. Branch seeding and in-place
	// revisions reproduce the in-memory shape the session had when the
	// thoughts were persisted.
	rebuilt := NewThoughtStore()
	total := 0
	for _, rec := range records {
		if rec.IsRevision {
			if !rebuilt.ReviseInPlace(rec.Thought) {
				rebuilt.Append(rec.Thought)
			}
		} else {
			rebuilt.Append(rec.Thought)
		}
		if rec.TotalThoughts > total {
			total = rec.TotalThoughts
		}
		if rec.Number > total {
			total = rec.Number
		}
	}
	Prune(rebuilt, e.limits, "")

	e.store = rebuilt
	e.totalThoughts = total
	e.active = seq

	e.logger.Info("sequence loaded",
		zap.String("sequence_id", seq.ID),
		zap.Int("thoughts_loaded", len(records)))

	return &model.DirectiveResult{
		Action:       "sequence_loaded",
		SequenceID:   seq.ID,
		ThoughtsRead: len(records),
		Thoughts:     records,
	}, nil
}

func (e *Engine) searchSequences(ctx context.Context, d *model.SearchDirective) (*model.DirectiveResult, error) {
	if e.db == nil {
		return nil, &PersistenceError{Op: "search sequences", Err: errors.New("no durable store configured")}
	}

	seqs, err := e.db.Search(ctx, store.SearchParams{
		Query:         d.Query,
		Limit:         d.Limit,
		ContentSearch: d.ContentSearch,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "search sequences", Err: err}
	}
	if seqs == nil {
		seqs = []model.Sequence{}
	}
	return &model.DirectiveResult{Action: "search_results", Sequences: seqs}, nil
}

func (e *Engine) exportSequence(ctx context.Context, d *model.ExportDirective) (*model.DirectiveResult, error) {
	if e.db == nil {
		return nil, &PersistenceError{Op: "export sequence", Err: errors.New("no durable store configured")}
	}

	bundle, err := e.db.Export(ctx, d.ID)
	if err != nil {
		if errors.Is(err, store.ErrSequenceNotFound) {
			return nil, &NotFoundError{Kind: "sequence", Ref: d.ID}
		}
		return nil, &PersistenceError{Op: "export sequence", Err: err}
	}
	return &model.DirectiveResult{
		Action:     "sequence_exported",
		SequenceID: d.ID,
		Bundle:     bundle,
	}, nil
}

func (e *Engine) importSequence(ctx context.Context, d *model.ImportDirective) (*model.DirectiveResult, error) {
	if e.db == nil {
		return nil, &PersistenceError{Op: "import sequence", Err: errors.New("no durable store configured")}
	}

	seq, err := e.db.Import(ctx, &d.Data)
	if err != nil {
		return nil, &PersistenceError{Op: "import sequence", Err: err}
	}

	e.logger.Info("sequence imported",
		zap.String("sequence_id", seq.ID),
		zap.Int("thoughts_saved", seq.ThoughtCount))

	return &model.DirectiveResult{
		Action:        "sequence_imported",
		SequenceID:    seq.ID,
		ThoughtsSaved: seq.ThoughtCount,
	}, nil
}
