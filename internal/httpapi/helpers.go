package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ap-dojo/internal/questionbank"
	"ap-dojo/internal/quiz"
)

func writeServiceError(w http.ResponseWriter, err error) {
	var loadErr *questionbank.LoadError
	switch {
	case errors.Is(err, quiz.ErrUnknownCategory):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "category not found"})
	case errors.Is(err, quiz.ErrNoUser):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user is required"})
	case errors.As(err, &loadErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "question bank unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

// parseCountParam reads a session size. Only the selectable sizes are
// accepted; 0 means every question.
func parseCountParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	for _, option := range quiz.CountOptions {
		if option == parsed {
			return parsed, nil
		}
	}
	return 0, fmt.Errorf("%s must be one of %v", key, quiz.CountOptions)
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethod string) {
	w.Header().Set("Allow", allowedMethod)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
