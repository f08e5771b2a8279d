package quiz

import (
	"sort"
	"time"
)

// Field is one of the three top-level subject areas a question belongs to.
type Field string

const (
	FieldTechnology Field = "T"
	FieldManagement Field = "M"
	FieldStrategy   Field = "S"
)

// Fields returns the subject areas in display order.
func Fields() []Field {
	return []Field{FieldTechnology, FieldManagement, FieldStrategy}
}

func (f Field) DisplayName() string {
	switch f {
	case FieldTechnology:
		return "Technology"
	case FieldManagement:
		return "Management"
	case FieldStrategy:
		return "Strategy"
	default:
		return string(f)
	}
}

type Question struct {
	ID             string            `json:"id"`
	ExamName       string            `json:"exam_name"`
	QuestionNumber int               `json:"question_number"`
	Category       string            `json:"category"`
	Field          Field             `json:"field"`
	QuestionText   string            `json:"question_text"`
	ImagePath      string            `json:"image_path,omitempty"`
	Choices        map[string]string `json:"choices"`
	CorrectAnswer  string            `json:"correct_answer"`
	Explanation    string            `json:"explanation,omitempty"`
}

// ChoiceKeys returns the choice keys in a stable display order.
func (q Question) ChoiceKeys() []string {
	keys := make([]string, 0, len(q.Choices))
	for key := range q.Choices {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (q Question) HasChoice(key string) bool {
	_, ok := q.Choices[key]
	return ok
}

// Dataset is the question bank document.
type Dataset struct {
	Questions []Question `json:"questions"`
}

// AnswerRecord is one submitted answer. Records are append-only.
type AnswerRecord struct {
	QuestionID    string `json:"question_id"`
	Category      string `json:"category"`
	Field         Field  `json:"field"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	AnsweredAt    string `json:"answered_at"`
}

// RemoteConfig holds the credential and repository identity used for sync.
type RemoteConfig struct {
	Token string `json:"token" validate:"required"`
	Owner string `json:"owner" validate:"required"`
	Repo  string `json:"repo" validate:"required"`
}

// SyncReceipt is what the remote store reports after a successful commit.
type SyncReceipt struct {
	ContentSHA string
	CommitSHA  string
	HTMLURL    string
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
