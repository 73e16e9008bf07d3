// Package history keeps the cumulative, append-only record of every answer
// given to every question, across sessions and process restarts.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/store"
)

// DefaultKey is the namespace the history blob is stored under.
const DefaultKey = "quizHistory"

var (
	ErrMergeAfterTerminal = errors.New("session already merged into history")
	ErrSessionNotFinished = errors.New("session has not reached its summary")
)

// Entry is one judged attempt at a question.
type Entry struct {
	Correct   bool      `json:"correct"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON also accepts the older numeric form of correct (1 or 0).
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Correct   json.RawMessage `json:"correct"`
		Timestamp time.Time       `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Timestamp = raw.Timestamp

	switch v := string(bytes.TrimSpace(raw.Correct)); v {
	case "true", "1":
		e.Correct = true
	case "false", "0", "", "null":
		e.Correct = false
	default:
		return fmt.Errorf("history entry: invalid correct value %s", v)
	}
	return nil
}

// Record is the full attempt history of one question, oldest first.
type Record struct {
	ID      questionbank.ID `json:"id"`
	History []Entry         `json:"history"`
}

// Store is the in-memory history, mirrored to a BlobStore as one JSON
// document that is rewritten on every merge. Not safe for concurrent use.
type Store struct {
	blobs  store.BlobStore
	key    string
	logger *slog.Logger

	records records
	merged  map[string]struct{} // session IDs already folded in
}

// Load reads the history blob under key. A missing blob is an empty history;
// a blob that cannot be parsed is logged and replaced by an empty history on
// the next save. Only failures of the blob store itself are returned.
func Load(ctx context.Context, blobs store.BlobStore, key string, logger *slog.Logger) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		blobs:   blobs,
		key:     key,
		logger:  logger,
		records: newRecords(),
		merged:  make(map[string]struct{}),
	}

	data, err := blobs.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var stored []Record
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("history is corrupt, starting empty", "key", key, "error", err)
		return s, nil
	}
	for _, r := range stored {
		if r.ID == "" {
			continue
		}
		for _, e := range r.History {
			s.records.append(r.ID, e)
		}
		s.records.ensure(r.ID)
	}

	logger.Info("history loaded", "key", key, "questions", len(s.records.list), "entries", s.records.entries())
	return s, nil
}

// Merge appends one entry per answered question of a finished session and
// saves the result before returning. If saving fails the in-memory history
// is left as it was. Each session may be merged once.
func (s *Store) Merge(ctx context.Context, session *practicesession.PracticeSession) error {
	if _, done := s.merged[session.ID]; done {
		s.logger.Error("refusing to merge session twice", "session_id", session.ID)
		return fmt.Errorf("session %s: %w", session.ID, ErrMergeAfterTerminal)
	}
	if session.State() != practicesession.StateSummary {
		return fmt.Errorf("session %s: %w", session.ID, ErrSessionNotFinished)
	}

	next := s.records.clone()
	items := session.Items()
	for _, item := range items {
		next.append(item.QuestionID, Entry{Correct: item.Correct, Timestamp: item.Timestamp})
	}

	if err := s.write(ctx, next.list); err != nil {
		return err
	}

	s.records = next
	s.merged[session.ID] = struct{}{}
	s.logger.Info("session merged into history", "session_id", session.ID, "entries", len(items))
	return nil
}

// Save writes the current history to the blob store.
func (s *Store) Save(ctx context.Context) error {
	return s.write(ctx, s.records.list)
}

func (s *Store) write(ctx context.Context, list []Record) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of every record in first-seen order.
func (s *Store) Snapshot() []Record {
	return s.records.clone().list
}

// Record returns the history of a single question.
func (s *Store) Record(id questionbank.ID) (Record, bool) {
	i, ok := s.records.index[id]
	if !ok {
		return Record{}, false
	}
	return cloneRecord(s.records.list[i]), true
}

// Entries counts every attempt across all questions.
func (s *Store) Entries() int {
	return s.records.entries()
}

// records keeps Records in first-seen order with an index by question id.
type records struct {
	list  []Record
	index map[questionbank.ID]int
}

func newRecords() records {
	return records{list: []Record{}, index: make(map[questionbank.ID]int)}
}

func (r *records) ensure(id questionbank.ID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	r.list = append(r.list, Record{ID: id, History: []Entry{}})
	r.index[id] = len(r.list) - 1
	return len(r.list) - 1
}

func (r *records) append(id questionbank.ID, e Entry) {
	i := r.ensure(id)
	r.list[i].History = append(r.list[i].History, e)
}

func (r records) clone() records {
	out := records{
		list:  make([]Record, len(r.list)),
		index: make(map[questionbank.ID]int, len(r.index)),
	}
	for i, rec := range r.list {
		out.list[i] = cloneRecord(rec)
		out.index[rec.ID] = i
	}
	return out
}

func (r records) entries() int {
	n := 0
	for _, rec := range r.list {
		n += len(rec.History)
	}
	return n
}

func cloneRecord(r Record) Record {
	h := make([]Entry, len(r.History))
	copy(h, r.History)
	return Record{ID: r.ID, History: h}
}
