package quiz

import (
	"math/rand"
	"time"
)

// CountOptions are the selectable session sizes. 0 means every question.
var CountOptions = []int{5, 10, 25, 50, 0}

const DefaultQuestionCount = 10

func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly random permutation of items without touching
// the input slice.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// PickQuestions returns count questions in random order. A count of zero or
// one at least as large as the input yields all of them, still shuffled.
func PickQuestions(rng *rand.Rand, questions []Question, count int) []Question {
	shuffled := Shuffle(rng, questions)
	if count <= 0 || count >= len(shuffled) {
		return shuffled
	}
	return shuffled[:count]
}

func isCountOption(count int) bool {
	for _, option := range CountOptions {
		if option == count {
			return true
		}
	}
	return false
}
