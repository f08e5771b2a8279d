package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDataset() *Dataset {
	return &Dataset{Questions: []Question{
		{ID: "q1", Category: "Network", Field: FieldTechnology, CorrectAnswer: "a", Choices: map[string]string{"a": "1", "b": "2"}},
		{ID: "q2", Category: "Database", Field: FieldTechnology, CorrectAnswer: "b", Choices: map[string]string{"a": "1", "b": "2"}},
		{ID: "q3", Category: "Network", Field: FieldTechnology, CorrectAnswer: "a", Choices: map[string]string{"a": "1", "b": "2"}},
		{ID: "q4", Category: "Audit", Field: FieldManagement, CorrectAnswer: "a", Choices: map[string]string{"a": "1", "b": "2"}},
		{ID: "q5", Category: "Network", Field: FieldTechnology, CorrectAnswer: "b", Choices: map[string]string{"a": "1", "b": "2"}},
	}}
}

func TestGroupByCategoryKeepsFirstOccurrenceOrder(t *testing.T) {
	got := GroupByCategory(sampleDataset())

	assert.Equal(t, []CategorySummary{
		{Name: "Network", Field: FieldTechnology, Count: 3},
		{Name: "Database", Field: FieldTechnology, Count: 1},
		{Name: "Audit", Field: FieldManagement, Count: 1},
	}, got)
}

func TestGroupByCategoryNilDataset(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func TestFilterByCategoryPreservesSourceOrder(t *testing.T) {
	got := FilterByCategory(sampleDataset(), "Network")

	ids := make([]string, 0, len(got))
	for _, question := range got {
		ids = append(ids, question.ID)
	}
	assert.Equal(t, []string{"q1", "q3", "q5"}, ids)
	assert.Empty(t, FilterByCategory(sampleDataset(), "Missing"))
}

func TestCategoriesByFieldSortsLargestFirst(t *testing.T) {
	summaries := []CategorySummary{
		{Name: "Small", Field: FieldTechnology, Count: 1},
		{Name: "Other", Field: FieldStrategy, Count: 9},
		{Name: "Big", Field: FieldTechnology, Count: 7},
		{Name: "AlsoSmall", Field: FieldTechnology, Count: 1},
	}

	got := CategoriesByField(summaries, FieldTechnology)
	assert.Equal(t, []CategorySummary{
		{Name: "Big", Field: FieldTechnology, Count: 7},
		{Name: "Small", Field: FieldTechnology, Count: 1},
		{Name: "AlsoSmall", Field: FieldTechnology, Count: 1},
	}, got)
}

func TestChoiceKeysSorted(t *testing.T) {
	question := Question{Choices: map[string]string{"エ": "d", "ア": "a", "ウ": "c", "イ": "b"}}

	assert.Equal(t, []string{"ア", "イ", "ウ", "エ"}, question.ChoiceKeys())
	assert.True(t, question.HasChoice("ウ"))
	assert.False(t, question.HasChoice("オ"))
}
