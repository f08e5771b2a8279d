package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-dojo/internal/questionbank"
	"ap-dojo/internal/quiz"
	"ap-dojo/internal/storage"
)

type fakeBank struct {
	data *quiz.Dataset
	err  error
}

func (f fakeBank) Load(context.Context) (*quiz.Dataset, error) {
	return f.data, f.err
}

func testDataset() *quiz.Dataset {
	question := func(id, category string, field quiz.Field) quiz.Question {
		return quiz.Question{
			ID:            id,
			Category:      category,
			Field:         field,
			QuestionText:  "text " + id,
			Choices:       map[string]string{"ア": "a", "イ": "b", "ウ": "c", "エ": "d"},
			CorrectAnswer: "ア",
		}
	}
	return &quiz.Dataset{Questions: []quiz.Question{
		question("q1", "DB", quiz.FieldTechnology),
		question("q2", "NW", quiz.FieldTechnology),
		question("q3", "NW", quiz.FieldTechnology),
		question("q4", "PM", quiz.FieldManagement),
		question("q5", "NW", quiz.FieldTechnology),
		question("q6", "Law", quiz.FieldStrategy),
	}}
}

func newTestRouter(t *testing.T, bank quiz.BankLoader) (http.Handler, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	service := quiz.NewService(bank, store, store, nil, quiz.WithRand(rand.New(rand.NewSource(7))))
	return NewRouter(service, nil), store
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandleCategoriesGroupsByField(t *testing.T) {
	router, _ := newTestRouter(t, fakeBank{data: testDataset()})

	rec := serve(router, http.MethodGet, "/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, []quiz.CategorySummary{
		{Name: "DB", Field: quiz.FieldTechnology, Count: 1},
		{Name: "NW", Field: quiz.FieldTechnology, Count: 3},
		{Name: "PM", Field: quiz.FieldManagement, Count: 1},
		{Name: "Law", Field: quiz.FieldStrategy, Count: 1},
	}, payload.Categories)

	require.Len(t, payload.Fields, 3)
	assert.Equal(t, quiz.FieldTechnology, payload.Fields[0].Field)
	assert.Equal(t, "NW", payload.Fields[0].Categories[0].Name)
	assert.Equal(t, "DB", payload.Fields[0].Categories[1].Name)
}

func TestHandleCategoriesBankUnavailable(t *testing.T) {
	router, _ := newTestRouter(t, fakeBank{err: &questionbank.LoadError{Source: "x", Err: errors.New("boom")}})

	rec := serve(router, http.MethodGet, "/categories")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleQuestions(t *testing.T) {
	router, _ := newTestRouter(t, fakeBank{data: testDataset()})

	rec := serve(router, http.MethodGet, "/questions?category=NW&count=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload questionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 3, payload.QuestionCount)
	for _, question := range payload.Questions {
		assert.Equal(t, "NW", question.Category)
	}

	rec = serve(router, http.MethodGet, "/questions?count=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 5, payload.QuestionCount)
}

func TestHandleQuestionsRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t, fakeBank{data: testDataset()})

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/questions?count=7").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/questions?count=abc").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/questions?category=nope").Code)

	rec := serve(router, http.MethodPost, "/questions")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHandleHistoryStatsAndClear(t *testing.T) {
	router, store := newTestRouter(t, fakeBank{data: testDataset()})
	ctx := context.Background()
	require.NoError(t, store.AppendHistory(ctx, "taro", []quiz.AnswerRecord{
		{QuestionID: "q1", Category: "DB", Field: quiz.FieldManagement, IsCorrect: true},
		{QuestionID: "q2", Category: "DB", Field: quiz.FieldManagement, IsCorrect: false},
		{QuestionID: "q3", Category: "NW", Field: quiz.FieldTechnology, IsCorrect: true},
	}))

	rec := serve(router, http.MethodGet, "/history/stats?user=taro")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 3, payload.Stats.Total)
	assert.Equal(t, 2, payload.Stats.Correct)
	assert.Equal(t, 67, payload.Stats.Rate)
	assert.Equal(t, quiz.CategoryStats{Total: 2, Correct: 1, Field: quiz.FieldManagement}, payload.Stats.ByCategory["DB"])
	require.Len(t, payload.Categories, 2)
	assert.Equal(t, "DB", payload.Categories[0].Name)
	assert.Equal(t, quiz.TierModerate, payload.Categories[0].Tier)

	rec = serve(router, http.MethodDelete, "/history?user=taro")
	require.Equal(t, http.StatusNoContent, rec.Code)

	history, err := store.History(ctx, "taro")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandleHistoryStatsDefaultsToCurrentUser(t *testing.T) {
	router, store := newTestRouter(t, fakeBank{data: testDataset()})
	ctx := context.Background()
	require.NoError(t, store.SetCurrentUser(ctx, "hanako"))
	require.NoError(t, store.AppendHistory(ctx, "hanako", []quiz.AnswerRecord{
		{QuestionID: "q4", Category: "PM", Field: quiz.FieldManagement, IsCorrect: true},
	}))

	rec := serve(router, http.MethodGet, "/history/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "hanako", payload.User)
	assert.Equal(t, 1, payload.Stats.Total)
}

func TestHandleHistoryRequiresUser(t *testing.T) {
	router, _ := newTestRouter(t, fakeBank{data: testDataset()})

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/history/stats").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/history?user=").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(router, http.MethodGet, "/history?user=taro").Code)
}

func TestParseCountParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	got, err := parseCountParam(req, "count", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	req = httptest.NewRequest(http.MethodGet, "/questions?count=50", nil)
	got, err = parseCountParam(req, "count", 10)
	require.NoError(t, err)
	assert.Equal(t, 50, got)

	req = httptest.NewRequest(http.MethodGet, "/questions?count=-5", nil)
	_, err = parseCountParam(req, "count", 10)
	assert.Error(t, err)
}
