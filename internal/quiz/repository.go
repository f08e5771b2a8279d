package quiz

import (
	"context"
	"errors"
)

var (
	ErrNoUser          = errors.New("no current user")
	ErrUnknownCategory = errors.New("unknown category")
)

type BankLoader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// HistoryRepository stores each user's answer log.
type HistoryRepository interface {
	AppendHistory(ctx context.Context, user string, records []AnswerRecord) error
	History(ctx context.Context, user string) ([]AnswerRecord, error)
	ClearHistory(ctx context.Context, user string) error
}

// ProfileRepository stores the current user identity and the sync configuration.
type ProfileRepository interface {
	CurrentUser(ctx context.Context) (string, error)
	SetCurrentUser(ctx context.Context, user string) error
	RemoteConfig(ctx context.Context) (RemoteConfig, bool, error)
	SetRemoteConfig(ctx context.Context, cfg RemoteConfig) error
}

type AnswerSyncer interface {
	CommitAnswers(ctx context.Context, cfg RemoteConfig, user string, answers []AnswerRecord) (SyncReceipt, error)
}
