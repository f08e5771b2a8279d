package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoQuestions       = errors.New("no questions to ask")
	ErrNoSelection       = errors.New("no choice selected")
	ErrUnknownChoice     = errors.New("unknown choice")
	ErrInvalidTransition = errors.New("invalid session transition")
)

type State int

const (
	StateAwaitingSelection State = iota
	StateAwaitingSubmit
	StateAnswered
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingSelection:
		return "awaiting_selection"
	case StateAwaitingSubmit:
		return "awaiting_submit"
	case StateAnswered:
		return "answered"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Rate    int `json:"rate"`
}

// Session is one run through a picked set of questions. It is not safe for
// concurrent use; a single caller drives it event by event.
type Session struct {
	ID string

	questions []Question
	current   int
	answers   []AnswerRecord
	selected  string
	state     State
	now       func() time.Time
}

type SessionOption func(*Session)

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSession(rng *rand.Rand, questions []Question, count int, opts ...SessionOption) (*Session, error) {
	if rng == nil {
		rng = NewRand()
	}
	picked := PickQuestions(rng, questions, count)
	if len(picked) == 0 {
		return nil, ErrNoQuestions
	}

	session := &Session{
		ID:        uuid.NewString(),
		questions: picked,
		answers:   make([]AnswerRecord, 0, len(picked)),
		state:     StateAwaitingSelection,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(session)
	}
	return session, nil
}

func (s *Session) State() State {
	return s.state
}

// Current returns the question being asked and its zero-based position.
func (s *Session) Current() (Question, int) {
	return s.questions[s.current], s.current
}

func (s *Session) Len() int {
	return len(s.questions)
}

func (s *Session) Selected() string {
	return s.selected
}

func (s *Session) IsLast() bool {
	return s.current >= len(s.questions)-1
}

func (s *Session) Answers() []AnswerRecord {
	out := make([]AnswerRecord, len(s.answers))
	copy(out, s.answers)
	return out
}

// LastAnswer returns the record of the most recent submit.
func (s *Session) LastAnswer() (AnswerRecord, bool) {
	if len(s.answers) == 0 {
		return AnswerRecord{}, false
	}
	return s.answers[len(s.answers)-1], true
}

// Select records a tentative choice. Selecting again before submit replaces it.
func (s *Session) Select(key string) error {
	if s.state != StateAwaitingSelection && s.state != StateAwaitingSubmit {
		return s.transitionError("select")
	}
	question := s.questions[s.current]
	if !question.HasChoice(key) {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, key)
	}

	s.selected = key
	s.state = StateAwaitingSubmit
	return nil
}

func (s *Session) Submit() (AnswerRecord, error) {
	switch s.state {
	case StateAwaitingSelection:
		return AnswerRecord{}, ErrNoSelection
	case StateAwaitingSubmit:
	default:
		return AnswerRecord{}, s.transitionError("submit")
	}

	question := s.questions[s.current]
	record := AnswerRecord{
		QuestionID:    question.ID,
		Category:      question.Category,
		Field:         question.Field,
		UserAnswer:    s.selected,
		CorrectAnswer: question.CorrectAnswer,
		IsCorrect:     s.selected == question.CorrectAnswer,
		AnsweredAt:    FormatTimestamp(s.now()),
	}
	s.answers = append(s.answers, record)
	s.state = StateAnswered
	return record, nil
}

// Advance moves to the next question, or completes the session after the last one.
func (s *Session) Advance() error {
	if s.state != StateAnswered {
		return s.transitionError("advance")
	}

	if s.IsLast() {
		s.state = StateComplete
		return nil
	}

	s.current++
	s.selected = ""
	s.state = StateAwaitingSelection
	return nil
}

func (s *Session) Score() Score {
	return ScoreAnswers(s.answers)
}

func (s *Session) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, s.state)
}

func ScoreAnswers(answers []AnswerRecord) Score {
	correct := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			correct++
		}
	}
	return Score{
		Correct: correct,
		Total:   len(answers),
		Rate:    Accuracy(correct, len(answers)),
	}
}

// Accuracy is the rounded percentage of correct over total, 0 when total is 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(correct)*100/float64(total) + 0.5))
}
