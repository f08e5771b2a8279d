package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"ap-dojo/internal/logger"
)

// Service is the controller behind every view: it owns the selected session
// size and the in-progress session, and reaches storage, the bank and the
// remote store only through its injected dependencies.
type Service struct {
	bank    BankLoader
	history HistoryRepository
	profile ProfileRepository
	syncer  AnswerSyncer
	log     *logger.Logger
	now     func() time.Time

	// rngMu guards rng; the HTTP surface picks questions concurrently.
	rngMu sync.Mutex
	rng   *rand.Rand

	questionCount int
	session       *Session
}

type ServiceOption func(*Service)

func WithRand(rng *rand.Rand) ServiceOption {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(log *logger.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithQuestionCount(count int) ServiceOption {
	return func(s *Service) {
		if isCountOption(count) {
			s.questionCount = count
		}
	}
}

func NewService(bank BankLoader, history HistoryRepository, profile ProfileRepository, syncer AnswerSyncer, opts ...ServiceOption) *Service {
	s := &Service{
		bank:          bank,
		history:       history,
		profile:       profile,
		syncer:        syncer,
		log:           logger.Nop(),
		rng:           NewRand(),
		now:           time.Now,
		questionCount: DefaultQuestionCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FinishReport is what the result view shows. Sync problems never surface as
// errors; they are reported through Synced and SyncMessage.
type FinishReport struct {
	Score       Score
	Answers     []AnswerRecord
	Synced      bool
	SyncMessage string
	Receipt     SyncReceipt
}

func (s *Service) IsConfigured(ctx context.Context) (bool, error) {
	user, err := s.profile.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return user != "", nil
}

func (s *Service) CurrentUser(ctx context.Context) (string, error) {
	return s.profile.CurrentUser(ctx)
}

func (s *Service) RemoteConfig(ctx context.Context) (RemoteConfig, error) {
	cfg, _, err := s.profile.RemoteConfig(ctx)
	return cfg, err
}

// Setup stores the first-run settings. Every field is required.
func (s *Service) Setup(ctx context.Context, user string, cfg RemoteConfig) error {
	user, cfg = normalizeSettings(user, cfg)
	if err := validateForm(setupForm{User: user, Remote: cfg}); err != nil {
		return err
	}
	return s.saveSettings(ctx, user, cfg)
}

// UpdateSettings stores edited settings. Only the user name is required, so
// sync can be switched off by clearing the token.
func (s *Service) UpdateSettings(ctx context.Context, user string, cfg RemoteConfig) error {
	user, cfg = normalizeSettings(user, cfg)
	if err := validateForm(settingsForm{User: user}); err != nil {
		return err
	}
	return s.saveSettings(ctx, user, cfg)
}

func (s *Service) saveSettings(ctx context.Context, user string, cfg RemoteConfig) error {
	if err := s.profile.SetCurrentUser(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.profile.SetRemoteConfig(ctx, cfg); err != nil {
		return fmt.Errorf("save sync config: %w", err)
	}
	s.log.Info("settings saved", "user", user, "owner", cfg.Owner, "repo", cfg.Repo)
	return nil
}

func (s *Service) QuestionCount() int {
	return s.questionCount
}

func (s *Service) SetQuestionCount(count int) error {
	if !isCountOption(count) {
		return fmt.Errorf("question count %d is not one of %v", count, CountOptions)
	}
	s.questionCount = count
	return nil
}

func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	return s.bank.Load(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]CategorySummary, error) {
	data, err := s.bank.Load(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(data), nil
}

// Pick returns a random selection without starting a session.
func (s *Service) Pick(ctx context.Context, category string, count int) ([]Question, error) {
	questions, err := s.questionsFor(ctx, category)
	if err != nil {
		return nil, err
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return PickQuestions(s.rng, questions, count), nil
}

func (s *Service) StartRandom(ctx context.Context) (*Session, error) {
	return s.start(ctx, "")
}

func (s *Service) StartCategory(ctx context.Context, category string) (*Session, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrUnknownCategory
	}
	return s.start(ctx, category)
}

func (s *Service) start(ctx context.Context, category string) (*Session, error) {
	questions, err := s.questionsFor(ctx, category)
	if err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	session, err := NewSession(s.rng, questions, s.questionCount, WithClock(s.now))
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}
	s.session = session
	s.log.Debug("session started", "session_id", session.ID, "category", category, "questions", session.Len())
	return session, nil
}

func (s *Service) questionsFor(ctx context.Context, category string) ([]Question, error) {
	data, err := s.bank.Load(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return data.Questions, nil
	}

	questions := FilterByCategory(data, category)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return questions, nil
}

// Session returns the in-progress session, if any.
func (s *Service) Session() *Session {
	return s.session
}

func (s *Service) Abandon() {
	s.session = nil
}

// Finish saves the completed session to local history and then commits it to
// the remote store. The session is discarded either way.
func (s *Service) Finish(ctx context.Context) (FinishReport, error) {
	session := s.session
	if session == nil {
		return FinishReport{}, fmt.Errorf("%w: no session in progress", ErrInvalidTransition)
	}
	if session.State() != StateComplete {
		return FinishReport{}, session.transitionError("finish")
	}
	s.session = nil

	answers := session.Answers()
	if len(answers) == 0 {
		return FinishReport{}, ErrNoQuestions
	}

	user, err := s.profile.CurrentUser(ctx)
	if err != nil {
		return FinishReport{}, err
	}
	if user == "" {
		return FinishReport{}, ErrNoUser
	}

	report := FinishReport{
		Score:   ScoreAnswers(answers),
		Answers: answers,
	}

	if err := s.history.AppendHistory(ctx, user, answers); err != nil {
		return FinishReport{}, fmt.Errorf("save history: %w", err)
	}

	report.Receipt, report.Synced, report.SyncMessage = s.sync(ctx, user, answers)
	return report, nil
}

func (s *Service) sync(ctx context.Context, user string, answers []AnswerRecord) (SyncReceipt, bool, string) {
	if s.syncer == nil {
		return SyncReceipt{}, false, "remote sync is not configured"
	}

	cfg, _, err := s.profile.RemoteConfig(ctx)
	if err != nil {
		s.log.Warn("read sync config failed", "error", err)
		return SyncReceipt{}, false, "sync failed: " + err.Error()
	}

	receipt, err := s.syncer.CommitAnswers(ctx, cfg, user, answers)
	if err != nil {
		s.log.Warn("remote sync failed", "user", user, "answers", len(answers), "error", err)
		return SyncReceipt{}, false, "sync failed: " + err.Error()
	}

	s.log.Info("remote sync done", "user", user, "answers", len(answers), "commit", receipt.CommitSHA)
	return receipt, true, "answers saved to the remote repository"
}

func (s *Service) Stats(ctx context.Context) (HistoryStats, error) {
	user, err := s.requireUser(ctx)
	if err != nil {
		return HistoryStats{}, err
	}
	return s.StatsFor(ctx, user)
}

func (s *Service) StatsFor(ctx context.Context, user string) (HistoryStats, error) {
	if strings.TrimSpace(user) == "" {
		return HistoryStats{}, ErrNoUser
	}
	history, err := s.history.History(ctx, user)
	if err != nil {
		return HistoryStats{}, err
	}
	return ComputeStats(history), nil
}

func (s *Service) ClearHistory(ctx context.Context) error {
	user, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	return s.ClearHistoryFor(ctx, user)
}

func (s *Service) ClearHistoryFor(ctx context.Context, user string) error {
	if strings.TrimSpace(user) == "" {
		return ErrNoUser
	}
	if err := s.history.ClearHistory(ctx, user); err != nil {
		return err
	}
	s.log.Info("history cleared", "user", user)
	return nil
}

func (s *Service) requireUser(ctx context.Context) (string, error) {
	user, err := s.profile.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == "" {
		return "", ErrNoUser
	}
	return user, nil
}
