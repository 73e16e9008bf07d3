package questionbank

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/remaimber-it/flashcards/internal/id"
)

var (
	ErrMissingID   = errors.New("question id cannot be empty")
	ErrDuplicateID = errors.New("duplicate question id")
)

// QuestionBank is the immutable set of questions a process quizzes from.
// A reload builds a new bank rather than mutating the current one.
type QuestionBank struct {
	questions []Question
	index     map[ID]int
}

// New builds a bank from source records, preserving their order.
// Every record needs a non-empty id and ids must be unique.
func New(questions []Question) (*QuestionBank, error) {
	qb := &QuestionBank{
		questions: make([]Question, len(questions)),
		index:     make(map[ID]int, len(questions)),
	}
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if _, dup := qb.index[q.ID]; dup {
			return nil, fmt.Errorf("record %d: %w %q", i, ErrDuplicateID, q.ID)
		}
		qb.index[q.ID] = i
		qb.questions[i] = q
	}
	return qb, nil
}

func (qb *QuestionBank) Len() int {
	return len(qb.questions)
}

// Questions returns a copy of the bank in source order.
func (qb *QuestionBank) Questions() []Question {
	out := make([]Question, len(qb.questions))
	copy(out, qb.questions)
	return out
}

func (qb *QuestionBank) Get(qid ID) (Question, bool) {
	i, ok := qb.index[qid]
	if !ok {
		return Question{}, false
	}
	return qb.questions[i], true
}

// NextID picks the id for a newly appended record: one past the largest
// numeric id, or a random id when the bank already uses non-numeric ids.
func (qb *QuestionBank) NextID() ID {
	var max int64
	for _, q := range qb.questions {
		n, ok := q.ID.numeric()
		if !ok {
			return ID(id.New())
		}
		if n > max {
			max = n
		}
	}
	return ID(strconv.FormatInt(max+1, 10))
}
