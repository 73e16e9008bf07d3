package practicesession

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/grader"
)

// PracticeSession is one run through a sampled set of questions.
//
// It is a small state machine:
//
//	Answering --Submit--> Feedback --Advance--> Answering (next question)
//	                               --Advance--> Summary   (after the last one)
//
// Every answered question passes through Feedback, and Summary is terminal.
// Restarting is not a transition: the owner discards the session and draws
// a new one. A PracticeSession is not safe for concurrent use.
type PracticeSession struct {
	ID        string
	Questions []questionbank.Question

	state    State
	position int
	items    []Item
	feedback *Feedback

	grader    grader.Grader
	now       func() time.Time
	observers []func(Snapshot)
}

// Option customises a PracticeSession at construction.
type Option func(*PracticeSession)

// WithGrader replaces the default exact-match grader.
func WithGrader(g grader.Grader) Option {
	return func(s *PracticeSession) { s.grader = g }
}

// WithClock sets the source of item timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *PracticeSession) { s.now = now }
}

// WithObserver registers fn to receive a snapshot after every transition.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *PracticeSession) { s.observers = append(s.observers, fn) }
}

// New draws a session from the bank according to config.
func New(bank *questionbank.QuestionBank, config SessionConfig, rng *rand.Rand, opts ...Option) *PracticeSession {
	return NewWithQuestions(Sample(bank.Questions(), config.MaxQuestions, rng), opts...)
}

// NewWithQuestions starts a session over questions in the given order.
// A session with no questions starts, and stays, in Summary.
func NewWithQuestions(questions []questionbank.Question, opts ...Option) *PracticeSession {
	s := &PracticeSession{
		ID:        uuid.NewString(),
		Questions: questions,
		state:     StateAnswering,
		items:     make([]Item, 0, len(questions)),
		grader:    grader.ExactGrader{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(questions) == 0 {
		s.state = StateSummary
	}
	return s
}

func (s *PracticeSession) State() State  { return s.state }
func (s *PracticeSession) Position() int { return s.position }
func (s *PracticeSession) Len() int      { return len(s.Questions) }

// Items returns the recorded answers in presentation order.
func (s *PracticeSession) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Current returns the question at the current position while one is open.
func (s *PracticeSession) Current() (questionbank.Question, bool) {
	if s.state == StateSummary {
		return questionbank.Question{}, false
	}
	return s.Questions[s.position], true
}

// Submit judges text against the current question and moves to Feedback.
// It reports false, and changes nothing, when the session is not waiting
// for an answer or when text is blank.
func (s *PracticeSession) Submit(text string) bool {
	if s.state != StateAnswering || grader.IsBlank(text) {
		return false
	}

	q := s.Questions[s.position]
	verdict := s.grader.Judge(text, q.Answer)
	item := Item{
		QuestionID: q.ID,
		UserAnswer: text,
		Correct:    verdict.Correct,
		Timestamp:  s.now().UTC(),
	}
	s.items = append(s.items, item)

	s.feedback = &Feedback{
		Result: resultFor(q, item),
		Last:   s.position+1 == len(s.Questions),
	}
	s.state = StateFeedback
	s.notify()
	return true
}

// Advance leaves Feedback for the next question, or for Summary after the
// last one. It reports false outside Feedback.
func (s *PracticeSession) Advance() bool {
	if s.state != StateFeedback {
		return false
	}

	s.feedback = nil
	if s.position+1 < len(s.Questions) {
		s.position++
		s.state = StateAnswering
	} else {
		s.state = StateSummary
	}
	s.notify()
	return true
}

// Summary tallies the answers recorded so far against the session length.
func (s *PracticeSession) Summary() Summary {
	results := make([]Result, len(s.items))
	correct := 0
	for i, item := range s.items {
		if item.Correct {
			correct++
		}
		results[i] = resultFor(s.Questions[i], item)
	}
	return Summary{
		Correct: correct,
		Total:   len(s.Questions),
		Results: results,
	}
}

// Snapshot captures the session for a presenter. The answer to an open
// question is withheld until it has been submitted.
func (s *PracticeSession) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.ID,
		State:     s.state,
		Position:  s.position,
		Total:     len(s.Questions),
	}
	switch s.state {
	case StateAnswering:
		q := s.Questions[s.position]
		snap.Question = &Prompt{ID: q.ID, Text: q.Question}
	case StateFeedback:
		q := s.Questions[s.position]
		snap.Question = &Prompt{ID: q.ID, Text: q.Question}
		fb := *s.feedback
		snap.Feedback = &fb
	case StateSummary:
		sum := s.Summary()
		snap.Summary = &sum
	}
	return snap
}

func (s *PracticeSession) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}

func resultFor(q questionbank.Question, item Item) Result {
	r := Result{
		QuestionID:     q.ID,
		Question:       q.Question,
		UserAnswer:     item.UserAnswer,
		ExpectedAnswer: q.Answer,
		Explanation:    q.Explanation,
		Correct:        item.Correct,
		Timestamp:      item.Timestamp,
	}
	if !item.Correct {
		h := grader.Diff(strings.TrimSpace(item.UserAnswer), q.Answer)
		r.Highlight = &h
	}
	return r
}
