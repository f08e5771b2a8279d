package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"ap-dojo/internal/logger"
	"ap-dojo/internal/quiz"
)

const defaultMaxLogBytes = 512

func NewRouter(service *quiz.Service, log *logger.Logger) http.Handler {
	api := NewAPI(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/categories", api.HandleCategories)
	mux.HandleFunc("/questions", api.HandleQuestions)
	mux.HandleFunc("/history/stats", api.HandleHistoryStats)
	mux.HandleFunc("/history", api.HandleHistory)

	return withRequestLogging(mux, api.log, defaultMaxLogBytes)
}

// statusRecorder captures the status and the first maxLogBytes of the body
// for the request log.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	maxLogBytes  int
	bytesWritten int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytesWritten += n

	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		if n > remaining {
			r.logBody.Write(p[:remaining])
			r.truncated = true
		} else {
			r.logBody.Write(p[:n])
		}
	} else if n > 0 {
		r.truncated = true
	}
	return n, err
}

func withRequestLogging(next http.Handler, log *logger.Logger, maxLogBytes int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			maxLogBytes:    maxLogBytes,
		}

		next.ServeHTTP(recorder, r)

		kvs := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.statusCode,
			"bytes", recorder.bytesWritten,
			"duration", time.Since(start),
		}
		if recorder.statusCode >= http.StatusBadRequest {
			kvs = append(kvs, "body", recorder.logBody.String(), "truncated", recorder.truncated)
			log.Warn("request failed", kvs...)
			return
		}
		log.Debug("request served", kvs...)
	})
}
