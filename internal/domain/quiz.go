package domain

import (
	"context"
	"time"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionTypeBoolean  QuestionType = "boolean"
	QuestionTypeInput    QuestionType = "input"
	QuestionTypeCheckbox QuestionType = "checkbox"
)

// QuestionTypes lists the valid types in display order.
var QuestionTypes = []QuestionType{QuestionTypeBoolean, QuestionTypeInput, QuestionTypeCheckbox}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeBoolean, QuestionTypeInput, QuestionTypeCheckbox:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeCheckbox
}

// Label is the human readable name shown by the client.
func (t QuestionType) Label() string {
	switch t {
	case QuestionTypeBoolean:
		return "True/False"
	case QuestionTypeInput:
		return "Short Text Answer"
	case QuestionTypeCheckbox:
		return "Multiple Choice"
	}
	return string(t)
}

// Quiz is a persisted quiz with its questions in creation order.
type Quiz struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	CreatedAt time.Time   `json:"createdAt"`
	Questions []*Question `json:"questions"`
}

// Question belongs to exactly one quiz. Options is nil unless Type is checkbox.
type Question struct {
	ID      int64        `json:"id"`
	QuizID  int64        `json:"quizId"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
}

// QuizSummary is the list view of a quiz.
type QuizSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewQuiz is a validated, normalized creation payload.
type NewQuiz struct {
	Title     string
	Questions []NewQuestion
}

type NewQuestion struct {
	Text    string
	Type    QuestionType
	Options []string
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// InsertQuiz inserts the quiz row and returns its generated id.
	InsertQuiz(ctx context.Context, title string, createdAt time.Time) (int64, error)

	// InsertQuestion inserts one question owned by quizID.
	InsertQuestion(ctx context.Context, quizID int64, question NewQuestion) (*Question, error)

	// ListQuizzes returns summaries ordered by creation time, newest first.
	ListQuizzes(ctx context.Context) ([]*QuizSummary, error)

	// GetQuizByID returns nil, nil when no quiz has the id.
	GetQuizByID(ctx context.Context, id int64) (*Quiz, error)

	// DeleteQuiz reports whether a row was deleted.
	DeleteQuiz(ctx context.Context, id int64) (bool, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
