package practicesession_test

import (
	"math/rand"
	"testing"
	"time"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/grader"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newSession(questions []questionbank.Question, opts ...practicesession.Option) *practicesession.PracticeSession {
	opts = append([]practicesession.Option{practicesession.WithClock(fixedClock)}, opts...)
	return practicesession.NewWithQuestions(questions, opts...)
}

func TestNew_DrawsFromBank(t *testing.T) {
	bank, err := questionbank.New(createQuestions(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session := practicesession.New(bank, practicesession.DefaultConfig(), rand.New(rand.NewSource(3)))

	if session.Len() != 3 {
		t.Errorf("expected 3 questions, got %d", session.Len())
	}
	if session.ID == "" {
		t.Error("expected non-empty session ID")
	}
	if session.State() != practicesession.StateAnswering {
		t.Errorf("expected state answering, got %s", session.State())
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	s1 := newSession(createQuestions(1))
	s2 := newSession(createQuestions(1))

	if s1.ID == s2.ID {
		t.Error("expected different IDs for different sessions")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := practicesession.DefaultConfig()

	if config.MaxQuestions != 10 {
		t.Errorf("expected MaxQuestions to default to 10, got %d", config.MaxQuestions)
	}
}

func TestSubmit_CorrectAnswer(t *testing.T) {
	session := newSession(createQuestions(2))

	if !session.Submit("  answer a ") {
		t.Fatal("expected submit to be accepted")
	}

	if session.State() != practicesession.StateFeedback {
		t.Fatalf("expected state feedback, got %s", session.State())
	}

	items := session.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].Correct {
		t.Error("expected item to be correct")
	}
	if items[0].UserAnswer != "  answer a " {
		t.Errorf("expected raw answer to be kept, got %q", items[0].UserAnswer)
	}
	if !items[0].Timestamp.Equal(fixedTime) {
		t.Errorf("expected timestamp %v, got %v", fixedTime, items[0].Timestamp)
	}

	snap := session.Snapshot()
	if snap.Feedback == nil || !snap.Feedback.Correct {
		t.Fatal("expected correct feedback in snapshot")
	}
	if snap.Feedback.Highlight != nil {
		t.Error("expected no highlight for a correct answer")
	}
	if snap.Feedback.Last {
		t.Error("expected first of two questions not to be last")
	}
}

func TestSubmit_WrongAnswerHighlights(t *testing.T) {
	session := newSession([]questionbank.Question{
		{ID: "1", Question: "Animal that purrs?", Answer: "car", Explanation: "it is a cat really"},
	})

	session.Submit("cat ")

	fb := session.Snapshot().Feedback
	if fb == nil {
		t.Fatal("expected feedback")
	}
	if fb.Correct {
		t.Error("expected wrong verdict")
	}
	if fb.Highlight == nil {
		t.Fatal("expected highlight for a wrong answer")
	}
	want := []grader.Segment{{Text: "ca"}, {Text: "t", Tagged: true}}
	if len(fb.Highlight.User) != 2 || fb.Highlight.User[0] != want[0] || fb.Highlight.User[1] != want[1] {
		t.Errorf("unexpected user highlight %+v", fb.Highlight.User)
	}
	if fb.Explanation != "it is a cat really" {
		t.Errorf("expected explanation in feedback, got %q", fb.Explanation)
	}
	if !fb.Last {
		t.Error("expected only question to be last")
	}
}

func TestSubmit_BlankIsIgnored(t *testing.T) {
	session := newSession(createQuestions(2))

	for _, blank := range []string{"", "   ", "\t\n"} {
		if session.Submit(blank) {
			t.Errorf("expected blank submit %q to be rejected", blank)
		}
	}

	if session.State() != practicesession.StateAnswering {
		t.Errorf("expected state answering, got %s", session.State())
	}
	if len(session.Items()) != 0 {
		t.Errorf("expected no items, got %d", len(session.Items()))
	}
}

func TestSubmit_IgnoredDuringFeedback(t *testing.T) {
	session := newSession(createQuestions(2))

	session.Submit("wrong")
	if session.Submit("answer a") {
		t.Error("expected second submit to be a no-op")
	}

	items := session.Items()
	if len(items) != 1 || items[0].Correct {
		t.Errorf("expected the first item to be kept unchanged, got %+v", items)
	}
}

func TestAdvance_IgnoredWhileAnswering(t *testing.T) {
	session := newSession(createQuestions(2))

	if session.Advance() {
		t.Error("expected advance without an answer to be a no-op")
	}

	session.Submit("x")
	session.Advance()
	if session.Advance() {
		t.Error("expected duplicate advance to be a no-op")
	}
	if session.Position() != 1 {
		t.Errorf("expected position 1, got %d", session.Position())
	}
	if session.State() != practicesession.StateAnswering {
		t.Errorf("expected state answering, got %s", session.State())
	}
}

func TestAdvance_LastQuestionGoesToSummary(t *testing.T) {
	session := newSession(createQuestions(2))

	session.Submit("answer a")
	session.Advance()
	session.Submit("nope")

	if session.State() != practicesession.StateFeedback {
		t.Fatalf("expected feedback on the last question, got %s", session.State())
	}

	if !session.Advance() {
		t.Fatal("expected advance from last feedback")
	}
	if session.State() != practicesession.StateSummary {
		t.Fatalf("expected state summary, got %s", session.State())
	}

	if session.Submit("answer b") || session.Advance() {
		t.Error("expected summary to be terminal")
	}

	sum := session.Summary()
	if sum.Correct != 1 || sum.Total != 2 {
		t.Errorf("expected 1/2, got %d/%d", sum.Correct, sum.Total)
	}
	if len(sum.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(sum.Results))
	}
	if sum.Results[1].Highlight == nil {
		t.Error("expected highlight on the wrong result")
	}
}

func TestZeroQuestions_StartsInSummary(t *testing.T) {
	session := newSession(nil)

	if session.State() != practicesession.StateSummary {
		t.Fatalf("expected state summary, got %s", session.State())
	}
	if _, ok := session.Current(); ok {
		t.Error("expected no current question")
	}
	if session.Submit("anything") {
		t.Error("expected submit to be rejected")
	}

	snap := session.Snapshot()
	if snap.Summary == nil || snap.Summary.Total != 0 || len(snap.Summary.Results) != 0 {
		t.Errorf("expected empty summary, got %+v", snap.Summary)
	}
}

func TestSnapshot_WithholdsAnswer(t *testing.T) {
	session := newSession(createQuestions(1))

	snap := session.Snapshot()
	if snap.Question == nil {
		t.Fatal("expected a prompt")
	}
	if snap.Question.Text != "Question A" {
		t.Errorf("expected prompt text %q, got %q", "Question A", snap.Question.Text)
	}
	if snap.Feedback != nil || snap.Summary != nil {
		t.Error("expected neither feedback nor summary while answering")
	}
}

func TestObserver_ReceivesEachTransition(t *testing.T) {
	var states []practicesession.State
	session := newSession(createQuestions(2), practicesession.WithObserver(func(s practicesession.Snapshot) {
		states = append(states, s.State)
	}))

	session.Submit("")
	session.Submit("a")
	session.Submit("b")
	session.Advance()
	session.Advance()
	session.Submit("c")
	session.Advance()

	want := []practicesession.State{
		practicesession.StateFeedback,
		practicesession.StateAnswering,
		practicesession.StateFeedback,
		practicesession.StateSummary,
	}
	if len(states) != len(want) {
		t.Fatalf("expected %d notifications, got %d (%v)", len(want), len(states), states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("notification %d: expected %s, got %s", i, want[i], states[i])
		}
	}
}

type alwaysRight struct{}

func (alwaysRight) Judge(string, string) grader.Verdict { return grader.Verdict{Correct: true} }

func TestWithGrader(t *testing.T) {
	session := newSession(createQuestions(1), practicesession.WithGrader(alwaysRight{}))

	session.Submit("anything at all")

	if !session.Items()[0].Correct {
		t.Error("expected custom grader verdict to be used")
	}
}

func TestState_Text(t *testing.T) {
	for _, s := range []practicesession.State{practicesession.StateAnswering, practicesession.StateFeedback, practicesession.StateSummary} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var back practicesession.State
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != s {
			t.Errorf("expected %s, got %s", s, back)
		}
	}
}
