// internal/service/quiz.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/history"
	"github.com/remaimber-it/flashcards/internal/source"
)

var (
	ErrSourceUnavailable = errors.New("question source unavailable")
	ErrSessionNotFound   = errors.New("session not found")
	ErrReadOnlySource    = source.ErrReadOnly
)

// DefaultSessionTTL is how long a session may sit untouched before it is dropped.
const DefaultSessionTTL = time.Hour

// Options tune a QuizService. Zero values fall back to defaults.
type Options struct {
	Session    practicesession.SessionConfig
	SessionTTL time.Duration
	Rand       *rand.Rand
	Clock      func() time.Time
}

// QuizService owns the question bank, the sessions in progress and the
// history store. Every method takes the service lock, so presenters may
// call it from any goroutine while each session and the history still see
// one operation at a time.
type QuizService struct {
	source  source.Source
	history *history.Store
	logger  *slog.Logger
	config  practicesession.SessionConfig
	ttl     time.Duration
	rng     *rand.Rand
	now     func() time.Time

	mu       sync.Mutex
	bank     *questionbank.QuestionBank // nil until a load succeeds
	loadErr  error
	sessions map[string]*tracked
}

type tracked struct {
	session *practicesession.PracticeSession
	config  practicesession.SessionConfig
	opts    []practicesession.Option
	merged  bool      // answers are in the saved history
	touched time.Time // last access, for expiry
}

// NewQuizService creates a QuizService. Call LoadQuestions before starting sessions.
func NewQuizService(src source.Source, h *history.Store, logger *slog.Logger, opts Options) *QuizService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	return &QuizService{
		source:   src,
		history:  h,
		logger:   logger,
		config:   opts.Session,
		ttl:      opts.SessionTTL,
		rng:      opts.Rand,
		now:      opts.Clock,
		loadErr:  errors.New("questions not loaded"),
		sessions: make(map[string]*tracked),
	}
}

// LoadQuestions reads the source and replaces the bank. The new bank only
// becomes visible once it is complete; on failure the service is left
// unavailable until a later load succeeds. Sessions already running keep
// their own questions.
func (qs *QuizService) LoadQuestions(ctx context.Context) error {
	questions, err := qs.source.Load(ctx)
	var bank *questionbank.QuestionBank
	if err == nil {
		bank, err = questionbank.New(questions)
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	if err != nil {
		qs.bank = nil
		qs.loadErr = err
		qs.logger.Error("failed to load questions", "source", qs.source.Location(), "error", err)
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	qs.bank = bank
	qs.loadErr = nil
	qs.logger.Info("questions loaded", "source", qs.source.Location(), "count", bank.Len())
	return nil
}

// Bank returns the current question bank.
func (qs *QuizService) Bank() (*questionbank.QuestionBank, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	if qs.bank == nil {
		return nil, qs.unavailable()
	}
	return qs.bank, nil
}

func (qs *QuizService) unavailable() error {
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, qs.loadErr)
}

// StartSession draws a new session from the bank using the configured
// session length. opts are applied to the session and to every session that
// replaces it through Restart.
func (qs *QuizService) StartSession(ctx context.Context, opts ...practicesession.Option) (practicesession.Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.start(ctx, qs.config, opts)
}

// StartSessionWithConfig is StartSession with its own draw limits.
func (qs *QuizService) StartSessionWithConfig(ctx context.Context, config practicesession.SessionConfig, opts ...practicesession.Option) (practicesession.Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.start(ctx, config, opts)
}

func (qs *QuizService) start(ctx context.Context, config practicesession.SessionConfig, opts []practicesession.Option) (practicesession.Snapshot, error) {
	if qs.bank == nil {
		return practicesession.Snapshot{}, qs.unavailable()
	}

	qs.expire()

	all := append([]practicesession.Option{practicesession.WithClock(qs.now)}, opts...)
	session := practicesession.New(qs.bank, config, qs.rng, all...)
	t := &tracked{session: session, config: config, opts: opts, touched: qs.now()}
	qs.sessions[session.ID] = t
	qs.logger.Info("session started", "session_id", session.ID, "questions", session.Len())

	// An empty draw is already finished.
	if err := qs.settle(ctx, t); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}

// settle merges a finished session into history once. A failed merge is
// retried by the next call, so answers survive a temporary save failure.
func (qs *QuizService) settle(ctx context.Context, t *tracked) error {
	if t.merged || t.session.State() != practicesession.StateSummary {
		return nil
	}
	err := qs.history.Merge(ctx, t.session)
	if err != nil && !errors.Is(err, history.ErrMergeAfterTerminal) {
		qs.logger.Error("failed to merge session", "session_id", t.session.ID, "error", err)
		return fmt.Errorf("merge session: %w", err)
	}
	t.merged = true
	return nil
}

// expire drops sessions idle for longer than the TTL. Finished sessions
// whose merge is still pending are kept so a retry can save them.
func (qs *QuizService) expire() {
	cutoff := qs.now().Add(-qs.ttl)
	for id, t := range qs.sessions {
		if !t.touched.Before(cutoff) {
			continue
		}
		if t.session.State() == practicesession.StateSummary && !t.merged {
			continue
		}
		delete(qs.sessions, id)
		qs.logger.Debug("session expired", "session_id", id, "state", t.session.State().String())
	}
}

// lookup returns a tracked session and marks it as used.
func (qs *QuizService) lookup(id string) (*tracked, error) {
	t, ok := qs.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	t.touched = qs.now()
	return t, nil
}

// Session returns the current snapshot of a session.
func (qs *QuizService) Session(id string) (practicesession.Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	t, err := qs.lookup(id)
	if err != nil {
		return practicesession.Snapshot{}, err
	}
	return t.session.Snapshot(), nil
}

// Submit answers the current question. accepted is false when the answer
// was blank or the session was not waiting for one.
func (qs *QuizService) Submit(id, answer string) (snap practicesession.Snapshot, accepted bool, err error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	t, err := qs.lookup(id)
	if err != nil {
		return practicesession.Snapshot{}, false, err
	}
	accepted = t.session.Submit(answer)
	return t.session.Snapshot(), accepted, nil
}

// Advance moves past the feedback of the current question. When that ends
// the session, its answers are merged into history and saved before Advance
// returns. Advancing a finished session whose save failed retries the save.
func (qs *QuizService) Advance(ctx context.Context, id string) (snap practicesession.Snapshot, accepted bool, err error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	t, err := qs.lookup(id)
	if err != nil {
		return practicesession.Snapshot{}, false, err
	}
	accepted = t.session.Advance()
	if accepted && t.session.State() == practicesession.StateSummary {
		summary := t.session.Summary()
		qs.logger.Info("session complete", "session_id", id, "correct", summary.Correct, "total", summary.Total)
	}

	if err := qs.settle(ctx, t); err != nil {
		return t.session.Snapshot(), accepted, err
	}
	return t.session.Snapshot(), accepted, nil
}

// Restart discards a session, finished or not, and starts a fresh draw.
// Answers from an unfinished session are not recorded. A finished session
// whose save failed is saved first. If that save fails, or no new session
// can be drawn, the old one is kept.
func (qs *QuizService) Restart(ctx context.Context, id string) (practicesession.Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	t, err := qs.lookup(id)
	if err != nil {
		return practicesession.Snapshot{}, err
	}
	if err := qs.settle(ctx, t); err != nil {
		return t.session.Snapshot(), err
	}
	snap, err := qs.start(ctx, t.config, t.opts)
	if err != nil {
		return snap, err
	}

	delete(qs.sessions, id)
	if t.session.State() != practicesession.StateSummary {
		qs.logger.Info("session abandoned", "session_id", id, "answered", len(t.session.Items()))
	}
	return snap, nil
}

// Discard forgets a session without starting another.
func (qs *QuizService) Discard(id string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	delete(qs.sessions, id)
}

// History returns a copy of every history record.
func (qs *QuizService) History() []history.Record {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.history.Snapshot()
}

// Stats returns per-question statistics from the history.
func (qs *QuizService) Stats() []history.QuestionStats {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.history.Stats()
}

// Export renders the history for download.
func (qs *QuizService) Export() (history.Export, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.history.Export(qs.now())
}

// AddQuestion appends a record through the source and reloads the bank so
// new sessions can draw it. A source.Multi picks an id unused by any of its
// sources.
func (qs *QuizService) AddQuestion(ctx context.Context, draft source.Draft) (questionbank.Question, error) {
	appender, ok := qs.source.(source.Appender)
	if !ok {
		return questionbank.Question{}, ErrReadOnlySource
	}

	q, err := appender.Append(ctx, draft)
	if err != nil {
		return questionbank.Question{}, err
	}
	qs.logger.Info("question added", "id", q.ID, "source", appender.Location())

	if err := qs.LoadQuestions(ctx); err != nil {
		return q, err
	}
	return q, nil
}
