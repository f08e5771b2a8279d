package quiz

import "sort"

type CategorySummary struct {
	Name  string `json:"name"`
	Field Field  `json:"field"`
	Count int    `json:"count"`
}

// GroupByCategory counts questions per category. Categories appear in the
// order they are first seen in data; the field is taken from that first question.
func GroupByCategory(data *Dataset) []CategorySummary {
	if data == nil {
		return nil
	}

	index := make(map[string]int)
	summaries := make([]CategorySummary, 0)
	for _, question := range data.Questions {
		idx, ok := index[question.Category]
		if !ok {
			idx = len(summaries)
			index[question.Category] = idx
			summaries = append(summaries, CategorySummary{
				Name:  question.Category,
				Field: question.Field,
			})
		}
		summaries[idx].Count++
	}
	return summaries
}

// FilterByCategory returns the questions in category, in source order.
func FilterByCategory(data *Dataset, category string) []Question {
	if data == nil {
		return nil
	}

	filtered := make([]Question, 0)
	for _, question := range data.Questions {
		if question.Category == category {
			filtered = append(filtered, question)
		}
	}
	return filtered
}

// CategoriesByField selects the summaries of one field, largest first.
func CategoriesByField(summaries []CategorySummary, field Field) []CategorySummary {
	out := make([]CategorySummary, 0)
	for _, summary := range summaries {
		if summary.Field == field {
			out = append(out, summary)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
