package history

import (
	"time"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
)

// QuestionStats summarises the attempts recorded for one question.
type QuestionStats struct {
	QuestionID    questionbank.ID `json:"question_id"`
	TimesAnswered int             `json:"times_answered"`
	TimesCorrect  int             `json:"times_correct"`
	LatestCorrect bool            `json:"latest_correct"`
	LastAnswered  time.Time       `json:"last_answered"`
	Mastery       int             `json:"mastery"` // 0-100
}

// CalculateMastery weights the latest attempt against the ones before it:
// mastery = latest * 0.6 + historical_average * 0.4, with a correct attempt
// scoring 100 and a wrong one 0.
func (qs *QuestionStats) CalculateMastery() int {
	if qs.TimesAnswered == 0 {
		return 0
	}

	latest := 0
	if qs.LatestCorrect {
		latest = 100
	}
	if qs.TimesAnswered == 1 {
		return latest
	}

	// Historical average (excluding latest)
	historicalCorrect := qs.TimesCorrect
	if qs.LatestCorrect {
		historicalCorrect--
	}
	historicalAvg := float64(historicalCorrect*100) / float64(qs.TimesAnswered-1)

	mastery := int(float64(latest)*0.6 + historicalAvg*0.4)
	if mastery > 100 {
		mastery = 100
	}
	if mastery < 0 {
		mastery = 0
	}
	return mastery
}

func statsFor(r Record) QuestionStats {
	qs := QuestionStats{QuestionID: r.ID, TimesAnswered: len(r.History)}
	for _, e := range r.History {
		if e.Correct {
			qs.TimesCorrect++
		}
	}
	if n := len(r.History); n > 0 {
		qs.LatestCorrect = r.History[n-1].Correct
		qs.LastAnswered = r.History[n-1].Timestamp
	}
	qs.Mastery = qs.CalculateMastery()
	return qs
}

// Stats returns per-question statistics in first-seen order.
func (s *Store) Stats() []QuestionStats {
	out := make([]QuestionStats, len(s.records.list))
	for i, r := range s.records.list {
		out[i] = statsFor(r)
	}
	return out
}
