package quiz

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionIDs(questions []Question) []string {
	ids := make([]string, 0, len(questions))
	for _, question := range questions {
		ids = append(ids, question.ID)
	}
	return ids
}

func sortedCopy(items []string) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	return out
}

func TestShuffleIsPermutationAndDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	input := []int{1, 2, 2, 3, 4, 5, 6, 7, 8, 9}
	original := append([]int(nil), input...)

	for round := 0; round < 50; round++ {
		got := Shuffle(rng, input)
		require.Len(t, got, len(input))
		assert.ElementsMatch(t, input, got)
	}
	assert.Equal(t, original, input)
}

func TestShuffleEmptyAndSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Empty(t, Shuffle(rng, []string{}))
	assert.Equal(t, []string{"only"}, Shuffle(rng, []string{"only"}))
}

func TestPickQuestionsAllWhenZeroOrOversized(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	questions := sampleDataset().Questions
	want := sortedCopy(questionIDs(questions))

	for _, count := range []int{0, -1, len(questions), len(questions) + 5} {
		got := PickQuestions(rng, questions, count)
		assert.Equal(t, want, sortedCopy(questionIDs(got)), "count=%d", count)
	}
}

func TestPickQuestionsReturnsDistinctSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	questions := sampleDataset().Questions
	all := questionIDs(questions)

	for count := 1; count < len(questions); count++ {
		got := questionIDs(PickQuestions(rng, questions, count))
		require.Len(t, got, count)

		seen := make(map[string]bool, len(got))
		for _, id := range got {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
			assert.Contains(t, all, id)
		}
	}
}

func TestIsCountOption(t *testing.T) {
	assert.True(t, isCountOption(0))
	assert.True(t, isCountOption(25))
	assert.False(t, isCountOption(7))
}
