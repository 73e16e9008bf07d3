package practicesession

import (
	"math/rand"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
)

// Sample draws min(maxCount, len(questions)) distinct questions in uniformly
// random order. The input slice is left untouched. A nil rng uses the
// package-level source.
func Sample(questions []questionbank.Question, maxCount int, rng *rand.Rand) []questionbank.Question {
	shuffled := shuffleQuestions(questions, rng)

	if maxCount < 0 {
		maxCount = 0
	}
	if maxCount < len(shuffled) {
		shuffled = shuffled[:maxCount]
	}
	return shuffled
}

// shuffleQuestions returns a new slice with questions in random order.
// rand.Shuffle is a Fisher-Yates shuffle, so every permutation is equally likely.
func shuffleQuestions(questions []questionbank.Question, rng *rand.Rand) []questionbank.Question {
	shuffled := make([]questionbank.Question, len(questions))
	copy(shuffled, questions)

	swap := func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	return shuffled
}
