package quiz

import "sort"

type Tally struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

type CategoryStats struct {
	Total   int   `json:"total"`
	Correct int   `json:"correct"`
	Field   Field `json:"field"`
}

// HistoryStats is derived from the answer log on demand and never stored.
type HistoryStats struct {
	Total      int                      `json:"total"`
	Correct    int                      `json:"correct"`
	Rate       int                      `json:"rate"`
	ByCategory map[string]CategoryStats `json:"by_category"`
	ByField    map[Field]Tally          `json:"by_field"`
	// CategoryOrder lists categories in the order they first appear in the log.
	CategoryOrder []string `json:"category_order"`
}

func ComputeStats(history []AnswerRecord) HistoryStats {
	stats := HistoryStats{
		ByCategory:    make(map[string]CategoryStats),
		ByField:       make(map[Field]Tally),
		CategoryOrder: make([]string, 0),
	}
	if len(history) == 0 {
		return stats
	}

	for _, record := range history {
		stats.Total++
		if record.IsCorrect {
			stats.Correct++
		}

		category, ok := stats.ByCategory[record.Category]
		if !ok {
			category = CategoryStats{Field: record.Field}
			stats.CategoryOrder = append(stats.CategoryOrder, record.Category)
		}
		category.Total++
		if record.IsCorrect {
			category.Correct++
		}
		stats.ByCategory[record.Category] = category

		field := stats.ByField[record.Field]
		field.Total++
		if record.IsCorrect {
			field.Correct++
		}
		stats.ByField[record.Field] = field
	}

	stats.Rate = Accuracy(stats.Correct, stats.Total)
	return stats
}

type Tier string

const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierWeak     Tier = "weak"
)

func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= 70:
		return TierStrong
	case accuracy >= 50:
		return TierModerate
	default:
		return TierWeak
	}
}

type CategoryRank struct {
	Name     string `json:"name"`
	Field    Field  `json:"field"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
	Accuracy int    `json:"accuracy"`
	Tier     Tier   `json:"tier"`
}

// RankCategories orders categories weakest first. Equal accuracies keep the
// order in which the categories first appeared.
func RankCategories(stats HistoryStats) []CategoryRank {
	ranks := make([]CategoryRank, 0, len(stats.CategoryOrder))
	for _, name := range stats.CategoryOrder {
		category := stats.ByCategory[name]
		accuracy := Accuracy(category.Correct, category.Total)
		ranks = append(ranks, CategoryRank{
			Name:     name,
			Field:    category.Field,
			Total:    category.Total,
			Correct:  category.Correct,
			Accuracy: accuracy,
			Tier:     TierFor(accuracy),
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Accuracy < ranks[j].Accuracy
	})
	return ranks
}
