package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ap-dojo/internal/logger"
)

func TestStatusRecorderWriteTracksAndTruncates(t *testing.T) {
	base := httptest.NewRecorder()
	recorder := &statusRecorder{
		ResponseWriter: base,
		statusCode:     http.StatusOK,
		maxLogBytes:    10,
	}

	payload := []byte("abcdefghijklmnopqrstuvwxyz")
	written, err := recorder.Write(payload)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if written != len(payload) {
		t.Fatalf("written bytes = %d, want %d", written, len(payload))
	}
	if recorder.bytesWritten != len(payload) {
		t.Fatalf("bytesWritten = %d, want %d", recorder.bytesWritten, len(payload))
	}
	if recorder.logBody.Len() != 10 {
		t.Fatalf("log body length = %d, want 10", recorder.logBody.Len())
	}
	if !recorder.truncated {
		t.Fatalf("expected truncated flag to be true")
	}
	if base.Body.String() != string(payload) {
		t.Fatalf("client body = %q, want full payload", base.Body.String())
	}
}

func TestStatusRecorderSecondWriteAfterLimitIsTruncated(t *testing.T) {
	recorder := &statusRecorder{
		ResponseWriter: httptest.NewRecorder(),
		statusCode:     http.StatusOK,
		maxLogBytes:    4,
	}

	_, _ = recorder.Write([]byte("abcd"))
	if recorder.truncated {
		t.Fatalf("exact fit should not be truncated")
	}
	_, _ = recorder.Write([]byte("e"))
	if !recorder.truncated {
		t.Fatalf("expected truncated after exceeding limit")
	}
	if recorder.logBody.String() != "abcd" {
		t.Fatalf("log body = %q, want %q", recorder.logBody.String(), "abcd")
	}
}

func TestRequestLoggingKeepsStatus(t *testing.T) {
	handler := withRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusTeapot, errorResponse{Error: strings.Repeat("x", 64)})
	}), logger.Nop(), 8)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if !strings.Contains(rec.Body.String(), strings.Repeat("x", 64)) {
		t.Fatalf("body was cut for the client: %q", rec.Body.String())
	}
}
