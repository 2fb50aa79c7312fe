package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
)

const (
	MsgTitleRequired       = "Quiz title is required"
	MsgQuestionsRequired   = "At least one question is required"
	MsgQuestionTextMissing = "Question text is required"
	MsgInvalidType         = "Invalid question type"
	MsgOptionsRequired     = "Multiple choice questions must have at least one option"
	MsgOptionTextMissing   = "Option text is required"
	MsgTitleTooLong        = "Quiz title must be at most 255 characters"

	MsgQuestionTextTooLong = "Question text must be at most 4000 bytes"
	MsgOptionsTooLong      = "Options must be at most 4000 bytes when encoded"

	// MaxTitleLength matches the quizzes.title column.
	MaxTitleLength = 255
	// MaxQuestionTextBytes and MaxOptionsBytes match the VARCHAR2(4000) question columns on Oracle.
	MaxQuestionTextBytes = 4000
	MaxOptionsBytes      = 4000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuiz checks a creation payload and returns it normalized.
// Every violation is reported, not just the first.
func (v *Validator) ValidateCreateQuiz(req *dto.CreateQuizRequest) (*domain.NewQuiz, domain.ValidationErrors) {
	if req == nil {
		return nil, domain.ValidationErrors{domain.NewFieldError("", "Request body is required")}
	}

	var errs domain.ValidationErrors
	out := &domain.NewQuiz{Title: strings.TrimSpace(req.Title)}

	switch {
	case out.Title == "":
		errs = append(errs, domain.NewFieldError("title", MsgTitleRequired))
	case utf8.RuneCountInString(out.Title) > MaxTitleLength:
		errs = append(errs, domain.NewFieldError("title", MsgTitleTooLong))
	}
	if len(req.Questions) == 0 {
		errs = append(errs, domain.NewFieldError("questions", MsgQuestionsRequired))
	}

	for i, q := range req.Questions {
		question, qErrs := v.validateQuestion(i, q)
		errs = append(errs, qErrs...)
		out.Questions = append(out.Questions, question)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (v *Validator) validateQuestion(index int, req dto.CreateQuestionRequest) (domain.NewQuestion, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	prefix := fmt.Sprintf("questions[%d]", index)

	q := domain.NewQuestion{
		Text: strings.TrimSpace(req.Text),
		Type: domain.QuestionType(req.Type),
	}

	switch {
	case q.Text == "":
		errs = append(errs, domain.NewFieldError(prefix+".text", MsgQuestionTextMissing))
	case len(q.Text) > MaxQuestionTextBytes:
		errs = append(errs, domain.NewFieldError(prefix+".text", MsgQuestionTextTooLong))
	}
	if !q.Type.Valid() {
		errs = append(errs, domain.NewFieldError(prefix+".type", MsgInvalidType))
		return q, errs
	}

	// options only survive for checkbox questions
	if !q.Type.HasOptions() {
		return q, errs
	}

	if len(req.Options) == 0 {
		errs = append(errs, domain.NewFieldError(prefix+".options", MsgOptionsRequired))
		return q, errs
	}
	q.Options = make([]string, 0, len(req.Options))
	for j, opt := range req.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			errs = append(errs, domain.NewFieldError(fmt.Sprintf("%s.options[%d]", prefix, j), MsgOptionTextMissing))
			continue
		}
		q.Options = append(q.Options, opt)
	}
	// measured the way the options column stores them
	if encoded, err := json.Marshal(q.Options); err == nil && len(encoded) > MaxOptionsBytes {
		errs = append(errs, domain.NewFieldError(prefix+".options", MsgOptionsTooLong))
	}
	return q, errs
}
