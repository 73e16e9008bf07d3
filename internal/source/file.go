package source

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
)

// FileSource reads questions from a JSON or YAML file on disk.
type FileSource struct {
	path   string
	format Format
	mu     sync.Mutex // serializes appends
}

var _ Appender = (*FileSource)(nil)

func NewFile(path string) *FileSource {
	return &FileSource{path: path, format: FormatOf(path)}
}

func (f *FileSource) Location() string { return f.path }

func (f *FileSource) Load(ctx context.Context) ([]questionbank.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &SourceError{Location: f.path, Wrapped: errors.Wrap(err, "read")}
	}
	questions, err := decode(f.format, data)
	if err != nil {
		return nil, &SourceError{Location: f.path, Wrapped: err}
	}
	return questions, nil
}

// Append adds draft to the end of the file and rewrites the file. A missing
// file is treated as an empty list. Without a preset draft.ID the next free
// id of this file is used. Drafts are stored as given; callers decide what
// counts as valid.
func (f *FileSource) Append(ctx context.Context, draft Draft) (questionbank.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	questions, err := f.Load(ctx)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return questionbank.Question{}, err
	}

	bank, err := questionbank.New(questions)
	if err != nil {
		return questionbank.Question{}, &SourceError{Location: f.path, Wrapped: err}
	}

	qid := draft.ID
	if qid == "" {
		qid = bank.NextID()
	} else if _, taken := bank.Get(qid); taken {
		return questionbank.Question{}, &SourceError{Location: f.path, Wrapped: errors.Wrapf(questionbank.ErrDuplicateID, "id %q", qid)}
	}

	q := questionbank.Question{
		ID:          qid,
		Question:    draft.Question,
		Answer:      draft.Answer,
		Explanation: draft.Explanation,
	}
	questions = append(questions, q)

	data, err := encode(f.format, questions)
	if err != nil {
		return questionbank.Question{}, errors.Wrap(err, "encode questions")
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		return questionbank.Question{}, &SourceError{Location: f.path, Wrapped: err}
	}
	return q, nil
}

// writeFileAtomic replaces path via a temp file so readers never see a
// half-written list.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "replace file")
}
