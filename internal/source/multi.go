package source

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/worker"
)

// Multi loads several sources concurrently and concatenates their records
// in the order the sources were given.
type Multi struct {
	sources []Source
	workers int
	mu      sync.Mutex // serializes appends
}

var _ Appender = (*Multi)(nil)

func NewMulti(workers int, sources ...Source) *Multi {
	return &Multi{sources: sources, workers: workers}
}

func (m *Multi) Location() string {
	locs := make([]string, len(m.sources))
	for i, s := range m.sources {
		locs[i] = s.Location()
	}
	return strings.Join(locs, ",")
}

type loaded struct {
	questions []questionbank.Question
	err       error
}

// Load fails as a whole if any source fails; the error of the earliest
// failing source is returned.
func (m *Multi) Load(ctx context.Context) ([]questionbank.Question, error) {
	pool := worker.NewPool[loaded](m.workers, len(m.sources))
	for i, src := range m.sources {
		src := src
		pool.Submit(strconv.Itoa(i), func() loaded {
			qs, err := src.Load(ctx)
			return loaded{questions: qs, err: err}
		})
	}
	pool.Close()

	parts := make([]loaded, len(m.sources))
	for r := range pool.Results() {
		i, _ := strconv.Atoi(r.JobID)
		parts[i] = r.Output
	}

	var all []questionbank.Question
	for _, p := range parts {
		if p.err != nil {
			return nil, p.err
		}
		all = append(all, p.questions...)
	}
	return all, nil
}

// Append writes draft to the first writable source. The id is chosen against
// the records of every source so the combined bank stays free of duplicates.
// A missing file behind the writable source counts as empty; any other
// source that fails to load aborts the append, since its ids are unknown.
func (m *Multi) Append(ctx context.Context, draft Draft) (questionbank.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := m.appenderIndex()
	if at < 0 {
		return questionbank.Question{}, ErrReadOnly
	}
	target := m.sources[at].(Appender)

	var all []questionbank.Question
	for i, src := range m.sources {
		qs, err := src.Load(ctx)
		if err != nil {
			if i == at && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return questionbank.Question{}, err
		}
		all = append(all, qs...)
	}

	bank, err := questionbank.New(all)
	if err != nil {
		return questionbank.Question{}, &SourceError{Location: m.Location(), Wrapped: err}
	}
	if draft.ID == "" {
		draft.ID = bank.NextID()
	} else if _, taken := bank.Get(draft.ID); taken {
		return questionbank.Question{}, &SourceError{Location: m.Location(), Wrapped: errors.Wrapf(questionbank.ErrDuplicateID, "id %q", draft.ID)}
	}
	return target.Append(ctx, draft)
}

// Appender returns the first source that accepts new records.
func (m *Multi) Appender() (Appender, bool) {
	at := m.appenderIndex()
	if at < 0 {
		return nil, false
	}
	return m.sources[at].(Appender), true
}

func (m *Multi) appenderIndex() int {
	for i, s := range m.sources {
		if _, ok := s.(Appender); ok {
			return i
		}
	}
	return -1
}
