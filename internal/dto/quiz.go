package dto

import (
	"time"

	"quiz-builder/internal/domain"
)

// CreateQuestionRequest is one question of a quiz creation payload
type CreateQuestionRequest struct {
	Text    string   `json:"text" example:"Is the Earth flat?"`
	Type    string   `json:"type" enums:"boolean,input,checkbox" example:"boolean"`
	Options []string `json:"options,omitempty"`
}

// CreateQuizRequest represents the request body for POST /quizzes
// @Description Quiz creation payload
type CreateQuizRequest struct {
	Title     string                  `json:"title" example:"General Knowledge Quiz"`
	Questions []CreateQuestionRequest `json:"questions"`
}

// QuestionResponse represents a stored question
type QuestionResponse struct {
	ID      int64    `json:"id"`
	QuizID  int64    `json:"quizId"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// QuizResponse represents a quiz with all of its questions
// @Description Quiz with questions
type QuizResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	CreatedAt time.Time          `json:"createdAt"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizSummaryResponse is one entry of GET /quizzes
type QuizSummaryResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DeleteQuizResponse confirms a deletion
type DeleteQuizResponse struct {
	Message string `json:"message" example:"Quiz deleted successfully"`
	ID      int64  `json:"id"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse lists every field violation of a rejected payload
type ValidationErrorResponse struct {
	Errors []domain.ValidationError `json:"errors"`
}

func NewQuizResponse(q *domain.Quiz) *QuizResponse {
	if q == nil {
		return nil
	}
	resp := &QuizResponse{
		ID:        q.ID,
		Title:     q.Title,
		CreatedAt: q.CreatedAt,
		Questions: make([]QuestionResponse, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:      question.ID,
			QuizID:  question.QuizID,
			Text:    question.Text,
			Type:    string(question.Type),
			Options: question.Options,
		})
	}
	return resp
}

func NewQuizSummaryResponses(summaries []*domain.QuizSummary) []QuizSummaryResponse {
	resp := make([]QuizSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, QuizSummaryResponse{
			ID:            s.ID,
			Title:         s.Title,
			QuestionCount: s.QuestionCount,
			CreatedAt:     s.CreatedAt,
		})
	}
	return resp
}
