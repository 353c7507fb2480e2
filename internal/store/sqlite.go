// Package store provides durable sequence and thought storage backed by
// SQLite, including the full-text index over thought content.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/nalyk/sequentialthinking/internal/model"
)

// ErrSequenceNotFound is returned when a sequence id has no row.
var ErrSequenceNotFound = errors.New("sequence not found")

// timeFormat is RFC3339 with fixed-width nanoseconds so stored timestamps
// sort lexically and consecutive writes within one second stay ordered.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sequences (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT,
		status        TEXT NOT NULL DEFAULT 'active',
		created       TEXT NOT NULL,
		last_modified TEXT NOT NULL,
		thought_count INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_sequences_modified ON sequences(last_modified DESC);

	CREATE TABLE IF NOT EXISTS thoughts (
		id                  TEXT PRIMARY KEY,
		sequence_id         TEXT NOT NULL REFERENCES sequences(id) ON DELETE CASCADE,
		thought             TEXT NOT NULL,
		thought_number      INTEGER NOT NULL,
		total_thoughts      INTEGER NOT NULL,
		is_revision         INTEGER NOT NULL DEFAULT 0,
		revises_thought     INTEGER,
		branch_from_thought INTEGER,
		branch_id           TEXT,
		thought_type        TEXT,
		verification_result TEXT,
		related_to          TEXT,
		created             TEXT NOT NULL,
		modified            TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_thoughts_seq_number ON thoughts(sequence_id, thought_number);

	CREATE VIRTUAL TABLE IF NOT EXISTS thoughts_fts USING fts5(
		thought,
		content=thoughts,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers keep the content index in sync with every write.
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS thoughts_ai AFTER INSERT ON thoughts BEGIN
		INSERT INTO thoughts_fts(rowid, thought) VALUES (new.rowid, new.thought);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS thoughts_ad AFTER DELETE ON thoughts BEGIN
		INSERT INTO thoughts_fts(thoughts_fts, rowid, thought) VALUES('delete', old.rowid, old.thought);
	END`)
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS thoughts_au AFTER UPDATE ON thoughts BEGIN
		INSERT INTO thoughts_fts(thoughts_fts, rowid, thought) VALUES('delete', old.rowid, old.thought);
		INSERT INTO thoughts_fts(rowid, thought) VALUES (new.rowid, new.thought);
	END`)

	// Backfill FTS for any existing thoughts not yet indexed
	s.db.Exec(`INSERT OR IGNORE INTO thoughts_fts(rowid, thought) SELECT rowid, thought FROM thoughts`)

	return nil
}

// CreateSequence inserts a new active sequence and returns it.
func (s *SQLiteStore) CreateSequence(ctx context.Context, title, description string) (*model.Sequence, error) {
	now := time.Now().UTC()
	seq := &model.Sequence{
		ID:           s.newID(),
		Title:        title,
		Description:  description,
		Status:       model.SequenceActive,
		Created:      now,
		LastModified: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sequences (id, title, description, status, created, last_modified, thought_count)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		seq.ID, title, nullStr(description), seq.Status,
		now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert sequence: %w", err)
	}
	return seq, nil
}

// LoadSequence returns the sequence with the given id, or ErrSequenceNotFound.
func (s *SQLiteStore) LoadSequence(ctx context.Context, id string) (*model.Sequence, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, status, created, last_modified, thought_count
		 FROM sequences WHERE id = ?`, id)

	seq, err := scanSequence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSequenceNotFound
		}
		return nil, err
	}
	return &seq, nil
}

// LoadThoughts returns a sequence's thoughts in submission order.
func (s *SQLiteStore) LoadThoughts(ctx context.Context, sequenceID string) ([]model.ThoughtRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sequence_id, thought, thought_number, total_thoughts, is_revision,
		        revises_thought, branch_from_thought, branch_id, thought_type,
		        verification_result, related_to, created, modified
		 FROM thoughts WHERE sequence_id = ?
		 ORDER BY created, rowid`, sequenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thoughts []model.ThoughtRecord
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, rows.Err()
}

// SaveThought appends a thought row to the sequence. Writes for one sequence
// must arrive in submission order; the store does not reorder them.
func (s *SQLiteStore) SaveThought(ctx context.Context, t model.Thought, sequenceID string) (*model.ThoughtRecord, error) {
	now := time.Now().UTC()
	rec := &model.ThoughtRecord{
		Thought:    t,
		ID:         s.newID(),
		SequenceID: sequenceID,
		Created:    now,
		Modified:   now,
	}

	var relatedJSON *string
	if len(t.RelatedTo) > 0 {
		b, _ := json.Marshal(t.RelatedTo)
		v := string(b)
		relatedJSON = &v
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO thoughts (id, sequence_id, thought, thought_number, total_thoughts,
		                       is_revision, revises_thought, branch_from_thought, branch_id,
		                       thought_type, verification_result, related_to, created, modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, sequenceID, t.Content, t.Number, t.TotalThoughts,
		boolInt(t.IsRevision), nullInt(t.RevisesThought), nullInt(t.BranchFromThought),
		nullStr(t.BranchID), nullStr(t.Type), nullStr(t.VerificationResult),
		relatedJSON, now.Format(timeFormat), now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert thought: %w", err)
	}
	return rec, nil
}

// TouchSequence updates a sequence's thought count, status, and modification
// time after a persisted thought.
func (s *SQLiteStore) TouchSequence(ctx context.Context, id string, thoughtCount int, status string) error {
	if !model.ValidSequenceStatuses[status] {
		return fmt.Errorf("invalid sequence status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sequences SET thought_count = ?, status = ?, last_modified = ? WHERE id = ?`,
		thoughtCount, status, time.Now().UTC().Format(timeFormat), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSequenceNotFound
	}
	return nil
}

// DeleteSequence removes a sequence; its thoughts cascade.
func (s *SQLiteStore) DeleteSequence(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sequences WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSequenceNotFound
	}
	return nil
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSequence(row scanner) (model.Sequence, error) {
	var seq model.Sequence
	var description sql.NullString
	var created, modified string

	err := row.Scan(&seq.ID, &seq.Title, &description, &seq.Status,
		&created, &modified, &seq.ThoughtCount)
	if err != nil {
		return seq, err
	}

	seq.Description = description.String
	seq.Created, _ = time.Parse(time.RFC3339, created)
	seq.LastModified, _ = time.Parse(time.RFC3339, modified)
	return seq, nil
}

func scanThought(row scanner) (model.ThoughtRecord, error) {
	var t model.ThoughtRecord
	var isRevision int
	var revises, branchFrom sql.NullInt64
	var branchID, thoughtType, verification, related sql.NullString
	var created, modified string

	err := row.Scan(&t.ID, &t.SequenceID, &t.Content, &t.Number, &t.TotalThoughts,
		&isRevision, &revises, &branchFrom, &branchID, &thoughtType,
		&verification, &related, &created, &modified)
	if err != nil {
		return t, err
	}

	t.IsRevision = isRevision != 0
	t.RevisesThought = int(revises.Int64)
	t.BranchFromThought = int(branchFrom.Int64)
	t.BranchID = branchID.String
	t.Type = thoughtType.String
	t.VerificationResult = verification.String
	if related.Valid {
		json.Unmarshal([]byte(related.String), &t.RelatedTo)
	}
	t.Created, _ = time.Parse(time.RFC3339, created)
	t.Modified, _ = time.Parse(time.RFC3339, modified)
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
