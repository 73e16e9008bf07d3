package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/flashcards/internal/api"
	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/history"
	"github.com/remaimber-it/flashcards/internal/service"
	"github.com/remaimber-it/flashcards/internal/source"
	"github.com/remaimber-it/flashcards/internal/store"
)

var answers = map[questionbank.ID]string{"1": "Paris", "2": "Rome"}

type stubSource struct {
	qs  []questionbank.Question
	err error
}

func (s stubSource) Load(context.Context) ([]questionbank.Question, error) { return s.qs, s.err }
func (s stubSource) Location() string                                      { return "stub" }

func newServer(t *testing.T, src source.Source, load bool) *httptest.Server {
	t.Helper()
	return newServerWithOrigins(t, src, load, []string{"*"})
}

func newServerWithOrigins(t *testing.T, src source.Source, load bool, origins []string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h, err := history.Load(context.Background(), store.NewMemory(), "", logger)
	require.NoError(t, err)

	quiz := service.NewQuizService(src, h, logger, service.Options{
		Session: practicesession.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(1)),
		Clock:   func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	if load {
		require.NoError(t, quiz.LoadQuestions(context.Background()))
	}

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(quiz, logger, origins), logger))
	t.Cleanup(srv.Close)
	return srv
}

func capitalsServer(t *testing.T) *httptest.Server {
	return newServer(t, stubSource{qs: []questionbank.Question{
		{ID: "1", Question: "Capital of France?", Answer: "Paris"},
		{ID: "2", Question: "Capital of Italy?", Answer: "Rome", Explanation: "Not Milan."},
	}}, true)
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := capitalsServer(t)

	resp := get(t, srv.URL+"/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}

func TestSessionFlow(t *testing.T) {
	srv := capitalsServer(t)

	resp := post(t, srv.URL+"/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[api.SessionResponse](t, resp)
	require.Equal(t, practicesession.StateAnswering, snap.State)
	require.Equal(t, 2, snap.Total)
	base := srv.URL + "/sessions/" + snap.SessionID

	// blank answers are ignored
	resp = post(t, base+"/answers", api.SubmitAnswerRequest{Answer: "  "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[api.SessionResponse](t, resp).Accepted)

	for i := 0; i < 2; i++ {
		answer := answers[snap.Question.ID]
		if i == 1 {
			answer = "nope"
		}
		resp = post(t, base+"/answers", api.SubmitAnswerRequest{Answer: answer})
		fb := decode[api.SessionResponse](t, resp)
		require.True(t, fb.Accepted)
		require.Equal(t, practicesession.StateFeedback, fb.State)
		assert.Equal(t, i == 0, fb.Feedback.Correct)

		resp = post(t, base+"/advance", nil)
		snap = decode[api.SessionResponse](t, resp)
		require.True(t, snap.Accepted)
	}

	require.Equal(t, practicesession.StateSummary, snap.State)
	assert.Equal(t, 1, snap.Summary.Correct)
	assert.Equal(t, 2, snap.Summary.Total)
	wrong := snap.Summary.Results[1]
	require.NotNil(t, wrong.Highlight)
	assert.Equal(t, "nope", wrong.UserAnswer)

	hist := decode[api.HistoryResponse](t, get(t, srv.URL+"/history"))
	assert.Equal(t, 2, hist.Entries)
	assert.Len(t, hist.Questions, 2)
}

func TestCreateSession_MaxQuestions(t *testing.T) {
	srv := capitalsServer(t)

	resp := post(t, srv.URL+"/sessions", map[string]int{"max_questions": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, decode[api.SessionResponse](t, resp).Total)

	resp = post(t, srv.URL+"/sessions", map[string]int{"max_questions": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSnapshotHidesAnswerWhileAnswering(t *testing.T) {
	srv := capitalsServer(t)

	resp := post(t, srv.URL+"/sessions", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "Paris")
	assert.NotContains(t, string(body), "Rome")
}

func TestRestartSession(t *testing.T) {
	srv := capitalsServer(t)
	first := decode[api.SessionResponse](t, post(t, srv.URL+"/sessions", nil))
	post(t, srv.URL+"/sessions/"+first.SessionID+"/answers", api.SubmitAnswerRequest{Answer: "Paris"})

	resp := post(t, srv.URL+"/sessions/"+first.SessionID+"/restart", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	next := decode[api.SessionResponse](t, resp)

	assert.NotEqual(t, first.SessionID, next.SessionID)
	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/sessions/"+first.SessionID).StatusCode)
	assert.Equal(t, 0, decode[api.HistoryResponse](t, get(t, srv.URL+"/history")).Entries)
}

func TestUnknownSession(t *testing.T) {
	srv := capitalsServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, srv.URL+"/sessions/missing").StatusCode)
	assert.Equal(t, http.StatusNotFound, post(t, srv.URL+"/sessions/missing/advance", nil).StatusCode)
}

func TestSourceUnavailable(t *testing.T) {
	srv := newServer(t, stubSource{err: errors.New("offline")}, false)

	assert.Equal(t, http.StatusServiceUnavailable, post(t, srv.URL+"/sessions", nil).StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv.URL+"/questions").StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, post(t, srv.URL+"/reload", nil).StatusCode)
}

func TestQuestions_ListAndAdd(t *testing.T) {
	file := source.NewFile(filepath.Join(t.TempDir(), "questions.json"))
	srv := newServer(t, source.NewMulti(1, file), false)

	resp := post(t, srv.URL+"/questions", api.AddQuestionRequest{Question: "Capital of Peru?"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, srv.URL+"/questions", api.AddQuestionRequest{Question: "Capital of Peru?", Answer: "Lima"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, questionbank.ID("1"), decode[questionbank.Question](t, resp).ID)

	list := decode[api.ListQuestionsResponse](t, get(t, srv.URL+"/questions"))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Lima", list.Questions[0].Answer)
}

func TestAddQuestion_ReadOnly(t *testing.T) {
	srv := capitalsServer(t)

	resp := post(t, srv.URL+"/questions", api.AddQuestionRequest{Question: "Q", Answer: "A"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestExportHistory(t *testing.T) {
	srv := capitalsServer(t)

	resp := get(t, srv.URL+"/history/export")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="quiz_results-20260102T030405Z.json"`, resp.Header.Get("Content-Disposition"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestInvalidJSON(t *testing.T) {
	srv := capitalsServer(t)
	snap := decode[api.SessionResponse](t, post(t, srv.URL+"/sessions", nil))

	resp, err := http.Post(srv.URL+"/sessions/"+snap.SessionID+"/answers", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type socketEvent struct {
	Type     string                    `json:"type"`
	Snapshot *practicesession.Snapshot `json:"snapshot"`
	Accepted bool                      `json:"accepted"`
	Error    string                    `json:"error"`
}

func TestSessionSocket(t *testing.T) {
	srv := capitalsServer(t)
	snap := decode[api.SessionResponse](t, post(t, srv.URL+"/sessions", map[string]int{"max_questions": 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ws, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/sessions/"+snap.SessionID, nil)
	require.NoError(t, err)
	defer ws.CloseNow()

	read := func() socketEvent {
		var ev socketEvent
		require.NoError(t, wsjson.Read(ctx, ws, &ev))
		return ev
	}

	ev := read()
	require.Equal(t, "snapshot", ev.Type)
	require.Equal(t, practicesession.StateAnswering, ev.Snapshot.State)

	require.NoError(t, wsjson.Write(ctx, ws, map[string]string{"type": "submit", "answer": answers[ev.Snapshot.Question.ID]}))
	ev = read()
	assert.True(t, ev.Accepted)
	assert.Equal(t, practicesession.StateFeedback, ev.Snapshot.State)
	assert.True(t, ev.Snapshot.Feedback.Correct)

	require.NoError(t, wsjson.Write(ctx, ws, map[string]string{"type": "advance"}))
	ev = read()
	assert.Equal(t, practicesession.StateSummary, ev.Snapshot.State)

	require.NoError(t, wsjson.Write(ctx, ws, map[string]string{"type": "jump"}))
	ev = read()
	assert.Equal(t, "error", ev.Type)

	require.NoError(t, wsjson.Write(ctx, ws, map[string]string{"type": "restart"}))
	ev = read()
	assert.Equal(t, practicesession.StateAnswering, ev.Snapshot.State)
	assert.NotEqual(t, snap.SessionID, ev.Snapshot.SessionID)

	ws.Close(websocket.StatusNormalClosure, "")
}

func TestSessionSocket_UnknownSession(t *testing.T) {
	srv := capitalsServer(t)

	resp := get(t, srv.URL+"/ws/sessions/missing")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionSocket_OriginCheck(t *testing.T) {
	srv := newServerWithOrigins(t, stubSource{qs: []questionbank.Question{
		{ID: "1", Question: "Capital of France?", Answer: "Paris"},
	}}, true, []string{"https://quiz.example.com"})
	snap := decode[api.SessionResponse](t, post(t, srv.URL+"/sessions", nil))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + snap.SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": {"https://evil.example.net"}},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	ws, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": {"https://quiz.example.com"}},
	})
	require.NoError(t, err)
	defer ws.CloseNow()

	var ev socketEvent
	require.NoError(t, wsjson.Read(ctx, ws, &ev))
	assert.Equal(t, "snapshot", ev.Type)
	ws.Close(websocket.StatusNormalClosure, "")
}
