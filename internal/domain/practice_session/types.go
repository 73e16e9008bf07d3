package practicesession

import (
	"fmt"
	"time"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/grader"
)

type State int

const (
	StateAnswering State = iota
	StateFeedback
	StateSummary
)

var stateNames = map[State]string{
	StateAnswering: "answering",
	StateFeedback:  "feedback",
	StateSummary:   "summary",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for state, name := range stateNames {
		if name == string(b) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", b)
}

// Item records one judged answer. It is created once, when the answer is
// submitted, and never changed afterwards.
type Item struct {
	QuestionID questionbank.ID `json:"question_id"`
	UserAnswer string          `json:"user_answer"` // as submitted, untrimmed
	Correct    bool            `json:"correct"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Result is an answered question as shown to the user.
type Result struct {
	QuestionID     questionbank.ID   `json:"question_id"`
	Question       string            `json:"question"`
	UserAnswer     string            `json:"user_answer"`
	ExpectedAnswer string            `json:"expected_answer"`
	Explanation    string            `json:"explanation,omitempty"`
	Correct        bool              `json:"correct"`
	Timestamp      time.Time         `json:"timestamp"`
	Highlight      *grader.Highlight `json:"highlight,omitempty"` // wrong answers only
}

// Feedback is the result of the answer just submitted.
type Feedback struct {
	Result
	Last bool `json:"last"` // advancing leads to the summary
}

type Summary struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

// Prompt is a question without its answer.
type Prompt struct {
	ID   questionbank.ID `json:"id"`
	Text string          `json:"text"`
}

// Snapshot is a point-in-time view of a session for presenters.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	State     State     `json:"state"`
	Position  int       `json:"position"`
	Total     int       `json:"total"`
	Question  *Prompt   `json:"question,omitempty"`
	Feedback  *Feedback `json:"feedback,omitempty"`
	Summary   *Summary  `json:"summary,omitempty"`
}
