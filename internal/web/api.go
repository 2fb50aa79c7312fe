package web

import (
	"context"
	"errors"

	"quiz-builder/internal/apiclient"
	"quiz-builder/internal/dto"
)

// QuizAPI is the part of the Quiz API the web client uses. *apiclient.Client implements it.
type QuizAPI interface {
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error)
}

var _ QuizAPI = (*apiclient.Client)(nil)

const (
	MsgQuizCreated   = "Quiz created successfully"
	MsgQuizDeleted   = "Quiz deleted successfully"
	MsgCreateFailed  = "Failed to create quiz"
	MsgListFailed    = "Failed to fetch quizzes"
	MsgFetchFailed   = "Failed to fetch quiz"
	MsgDeleteFailed  = "Failed to delete quiz"
	MsgQuizNotFound  = "Quiz not found"
	MsgTitleRequired = "Quiz title is required"
	MsgNoQuestions   = "At least one question is required"
	MsgQuestionText  = "All questions must have text"
	MsgNoOptions     = "Multiple choice questions must have at least one option"
)

// errorMessage prefers the message the API sent over the fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
