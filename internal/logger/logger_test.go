package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user", "taro", "github_token", "ghp_x", "Authorization", "Bearer y"})

	assert.Equal(t, []interface{}{"user", "taro", "github_token", "[REDACTED]", "Authorization", "[REDACTED]"}, out)
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"count", 3, "orphan"})

	assert.Equal(t, []interface{}{"count", 3, "orphan"}, out)
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	log := Nop().With("session_id", "s1")
	assert.NotPanics(t, func() {
		log.Info("hello", "token", "secret")
		log.Sync()
	})
}
