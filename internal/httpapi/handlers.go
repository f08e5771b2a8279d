package httpapi

import (
	"net/http"
	"strings"

	"ap-dojo/internal/quiz"
)

func (a *API) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	summaries, err := a.service.Categories(r.Context())
	if err != nil {
		a.log.Error("list categories failed", "error", err)
		writeServiceError(w, err)
		return
	}

	fields := make([]fieldCategories, 0, len(quiz.Fields()))
	for _, field := range quiz.Fields() {
		fields = append(fields, fieldCategories{
			Field:      field,
			Name:       field.DisplayName(),
			Categories: quiz.CategoriesByField(summaries, field),
		})
	}

	writeJSON(w, http.StatusOK, categoriesResponse{
		Categories: summaries,
		Fields:     fields,
	})
}

// HandleQuestions returns a random selection, optionally limited to one
// category. Correct answers are included; scoring happens client side.
func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	count, err := parseCountParam(r, "count", a.service.QuestionCount())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	questions, err := a.service.Pick(r.Context(), category, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{
		Category:      category,
		QuestionCount: len(questions),
		Questions:     questions,
	})
}

func (a *API) HandleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		current, err := a.service.CurrentUser(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		user = current
	}

	stats, err := a.service.StatsFor(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		User:       user,
		Stats:      stats,
		Categories: quiz.RankCategories(stats),
	})
}

func (a *API) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w, http.MethodDelete)
		return
	}

	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if err := a.service.ClearHistoryFor(r.Context(), user); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
