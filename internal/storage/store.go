package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ap-dojo/internal/quiz"
)

const (
	keyCurrentUser   = "ap_current_user"
	keyRemoteConfig  = "ap_config"
	keyHistoryPrefix = "ap_history_"
)

var ErrEmptyUser = errors.New("user is required")

// KV is the local key-value substrate. Get reports a missing key with ok=false.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store keeps the current user, the sync configuration and each user's
// answer history on top of a KV.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) CurrentUser(ctx context.Context) (string, error) {
	user, _, err := s.kv.Get(ctx, keyCurrentUser)
	return user, err
}

func (s *Store) SetCurrentUser(ctx context.Context, user string) error {
	return s.kv.Set(ctx, keyCurrentUser, user)
}

func (s *Store) RemoteConfig(ctx context.Context) (quiz.RemoteConfig, bool, error) {
	var cfg quiz.RemoteConfig
	ok, err := s.getJSON(ctx, keyRemoteConfig, &cfg)
	return cfg, ok, err
}

func (s *Store) SetRemoteConfig(ctx context.Context, cfg quiz.RemoteConfig) error {
	return s.setJSON(ctx, keyRemoteConfig, cfg)
}

func (s *Store) History(ctx context.Context, user string) ([]quiz.AnswerRecord, error) {
	key, err := historyKey(user)
	if err != nil {
		return nil, err
	}

	history := make([]quiz.AnswerRecord, 0)
	if _, err := s.getJSON(ctx, key, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// AppendHistory adds records to the end of the user's log.
func (s *Store) AppendHistory(ctx context.Context, user string, records []quiz.AnswerRecord) error {
	key, err := historyKey(user)
	if err != nil {
		return err
	}

	history, err := s.History(ctx, user)
	if err != nil {
		return err
	}
	history = append(history, records...)
	return s.setJSON(ctx, key, history)
}

func (s *Store) ClearHistory(ctx context.Context, user string) error {
	key, err := historyKey(user)
	if err != nil {
		return err
	}
	return s.kv.Delete(ctx, key)
}

func historyKey(user string) (string, error) {
	if strings.TrimSpace(user) == "" {
		return "", ErrEmptyUser
	}
	return keyHistoryPrefix + user, nil
}

func (s *Store) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(encoded))
}
