package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/grader"
	"github.com/remaimber-it/flashcards/internal/service"
)

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiRed       = "\x1b[31m"
	ansiGreen     = "\x1b[32m"
	ansiYellow    = "\x1b[33m"
	ansiUnderline = "\x1b[4m"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type palette bool

func (p palette) paint(code, s string) string {
	if !p || s == "" {
		return s
	}
	return code + s + ansiReset
}

// terminal runs sessions on a line-oriented terminal. Enter submits the
// typed answer, then moves on from feedback, then starts a new session
// from the summary. Typing q at the summary quits.
type terminal struct {
	quiz   *service.QuizService
	in     *bufio.Scanner
	out    io.Writer
	colour palette

	state practicesession.State
}

func newTerminal(quiz *service.QuizService, in io.Reader, out io.Writer, colour bool) *terminal {
	return &terminal{
		quiz:   quiz,
		in:     bufio.NewScanner(in),
		out:    out,
		colour: palette(colour),
	}
}

// Run plays sessions until the user quits or input ends. A session left
// unfinished is not recorded.
func (t *terminal) Run(ctx context.Context) error {
	snap, err := t.quiz.StartSession(ctx, practicesession.WithObserver(t.render))
	if err != nil {
		return err
	}
	t.render(snap)
	id := snap.SessionID
	defer func() { t.quiz.Discard(id) }()

	for t.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := t.in.Text()

		switch t.state {
		case practicesession.StateAnswering:
			if _, accepted, err := t.quiz.Submit(id, line); err != nil {
				return err
			} else if !accepted {
				t.prompt()
			}
		case practicesession.StateFeedback:
			if _, _, err := t.quiz.Advance(ctx, id); err != nil {
				fmt.Fprintln(t.out, t.colour.paint(ansiYellow, "Warning: "+err.Error()))
			}
		case practicesession.StateSummary:
			if strings.EqualFold(strings.TrimSpace(line), "q") {
				return nil
			}
			snap, err := t.quiz.Restart(ctx, id)
			if err != nil {
				return err
			}
			id = snap.SessionID
			t.render(snap)
		}
	}
	return t.in.Err()
}

func (t *terminal) render(snap practicesession.Snapshot) {
	t.state = snap.State
	switch snap.State {
	case practicesession.StateAnswering:
		fmt.Fprintf(t.out, "\n%s\n%s\n", t.colour.paint(ansiBold, fmt.Sprintf("Question %d/%d", snap.Position+1, snap.Total)), snap.Question.Text)
		t.prompt()
	case practicesession.StateFeedback:
		t.renderFeedback(snap.Feedback)
	case practicesession.StateSummary:
		t.renderSummary(snap.Summary)
	}
}

func (t *terminal) prompt() {
	fmt.Fprint(t.out, "> ")
}

func (t *terminal) renderFeedback(fb *practicesession.Feedback) {
	if fb.Correct {
		fmt.Fprintln(t.out, t.colour.paint(ansiGreen, "✓ Correct!"))
	} else {
		fmt.Fprintln(t.out, t.colour.paint(ansiRed, "✗ Incorrect"))
		user, expected := t.highlight(fb.Highlight)
		fmt.Fprintf(t.out, "  Your answer: %s\n", user)
		fmt.Fprintf(t.out, "  Expected:    %s\n", expected)
		if fb.Explanation != "" {
			fmt.Fprintf(t.out, "  %s\n", fb.Explanation)
		}
	}

	next := "continue"
	if fb.Last {
		next = "see your results"
	}
	fmt.Fprintf(t.out, "Press Enter to %s.\n", next)
}

// highlight renders both sides of a diff, marking mismatched runs.
func (t *terminal) highlight(h *grader.Highlight) (user, expected string) {
	if h == nil {
		return "", ""
	}
	return t.segments(h.User, ansiRed+ansiUnderline), t.segments(h.Expected, ansiGreen+ansiUnderline)
}

func (t *terminal) segments(segs []grader.Segment, code string) string {
	var b strings.Builder
	for _, s := range segs {
		switch {
		case !s.Tagged:
			b.WriteString(s.Text)
		case bool(t.colour):
			b.WriteString(t.colour.paint(code, s.Text))
		default:
			b.WriteString("[" + s.Text + "]")
		}
	}
	return b.String()
}

func (t *terminal) renderSummary(sum *practicesession.Summary) {
	fmt.Fprintf(t.out, "\n%s\n\n", t.colour.paint(ansiBold, fmt.Sprintf("Score: %d/%d", sum.Correct, sum.Total)))

	if len(sum.Results) > 0 {
		rows := [][]string{{"#", "QUESTION", "YOUR ANSWER", "EXPECTED", "RESULT", "EXPLANATION"}}
		for i, r := range sum.Results {
			answer := strings.TrimSpace(r.UserAnswer)
			if answer == "" {
				answer = "(blank)"
			}
			verdict, explanation := t.colour.paint(ansiGreen, "✓"), ""
			if !r.Correct {
				verdict, explanation = t.colour.paint(ansiRed, "✗"), r.Explanation
				answer, _ = t.highlight(r.Highlight)
			}
			rows = append(rows, []string{fmt.Sprint(i + 1), r.Question, answer, r.ExpectedAnswer, verdict, explanation})
		}
		writeTable(t.out, rows)
		fmt.Fprintln(t.out)
	}

	fmt.Fprintln(t.out, "Press Enter to start again, or q to quit.")
}

// writeTable lays rows out in columns two spaces apart. Widths are measured
// without ANSI escapes so coloured cells line up with plain ones.
func writeTable(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(cell)+2))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiEscape.ReplaceAllString(s, ""))
}
