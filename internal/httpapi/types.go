package httpapi

import "ap-dojo/internal/quiz"

type fieldCategories struct {
	Field      quiz.Field             `json:"field"`
	Name       string                 `json:"name"`
	Categories []quiz.CategorySummary `json:"categories"`
}

type categoriesResponse struct {
	Categories []quiz.CategorySummary `json:"categories"`
	Fields     []fieldCategories      `json:"fields"`
}

type questionsResponse struct {
	Category      string          `json:"category,omitempty"`
	QuestionCount int             `json:"question_count"`
	Questions     []quiz.Question `json:"questions"`
}

type statsResponse struct {
	User       string              `json:"user"`
	Stats      quiz.HistoryStats   `json:"stats"`
	Categories []quiz.CategoryRank `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}
