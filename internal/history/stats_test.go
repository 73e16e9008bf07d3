package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/flashcards/internal/history"
	"github.com/remaimber-it/flashcards/internal/store"
)

func TestCalculateMastery(t *testing.T) {
	tests := []struct {
		name  string
		stats history.QuestionStats
		want  int
	}{
		{"never answered", history.QuestionStats{}, 0},
		{"first attempt right", history.QuestionStats{TimesAnswered: 1, TimesCorrect: 1, LatestCorrect: true}, 100},
		{"first attempt wrong", history.QuestionStats{TimesAnswered: 1}, 0},
		{"recovered after misses", history.QuestionStats{TimesAnswered: 3, TimesCorrect: 1, LatestCorrect: true}, 60},
		{"slipped after hits", history.QuestionStats{TimesAnswered: 3, TimesCorrect: 2, LatestCorrect: false}, 40},
		{"always right", history.QuestionStats{TimesAnswered: 4, TimesCorrect: 4, LatestCorrect: true}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.CalculateMastery())
		})
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := loadStore(t, store.NewMemory())
	require.NoError(t, s.Merge(ctx, finishedSession(t, t0, bank[:2], "paris", "rome")))
	later := t0.Add(time.Hour)
	require.NoError(t, s.Merge(ctx, finishedSession(t, later, bank[:1], "lyon")))

	stats := s.Stats()
	require.Len(t, stats, 2)

	assert.Equal(t, history.QuestionStats{
		QuestionID:    "1",
		TimesAnswered: 2,
		TimesCorrect:  1,
		LatestCorrect: false,
		LastAnswered:  later,
		Mastery:       40,
	}, stats[0])
	assert.Equal(t, 100, stats[1].Mastery)
}
