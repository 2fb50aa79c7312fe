package web

import (
	"fmt"
	"time"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/draft"
	"quiz-builder/internal/dto"
)

// QuizRow is one line of the list view.
type QuizRow struct {
	ID            int64
	Title         string
	QuestionCount int
	CreatedAt     time.Time
}

type ListPage struct {
	PageTitle string
	Quizzes   []QuizRow
	Success   string
	Error     string
}

type QuestionView struct {
	Number    int
	Text      string
	TypeLabel string
	Options   []string
}

type DetailPage struct {
	PageTitle     string
	ID            int64
	Title         string
	CreatedAt     time.Time
	QuestionCount int
	Questions     []QuestionView
	Error         string
}

type TypeChoice struct {
	Value    string
	Label    string
	Selected bool
}

type OptionView struct {
	Index int
	Text  string
}

type DraftQuestionView struct {
	ID         string
	Number     int
	Text       string
	Type       string
	IsCheckbox bool
	Choices    []TypeChoice
	Options    []OptionView
}

type AuthoringPage struct {
	PageTitle string
	Title     string
	Questions []DraftQuestionView
	Error     string
}

// questionCount renders "1 question" or "N questions".
func questionCount(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04 MST")
}

func newQuizRows(summaries []dto.QuizSummaryResponse) []QuizRow {
	rows := make([]QuizRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, QuizRow{ID: s.ID, Title: s.Title, QuestionCount: s.QuestionCount, CreatedAt: s.CreatedAt})
	}
	return rows
}

func newDetailPage(q *dto.QuizResponse) DetailPage {
	page := DetailPage{
		PageTitle:     q.Title,
		ID:            q.ID,
		Title:         q.Title,
		CreatedAt:     q.CreatedAt,
		QuestionCount: len(q.Questions),
		Questions:     make([]QuestionView, 0, len(q.Questions)),
	}
	for i, question := range q.Questions {
		t := domain.QuestionType(question.Type)
		view := QuestionView{Number: i + 1, Text: question.Text, TypeLabel: t.Label()}
		if t.HasOptions() {
			view.Options = question.Options
		}
		page.Questions = append(page.Questions, view)
	}
	return page
}

func newAuthoringPage(snap draft.Snapshot, errMsg string) AuthoringPage {
	page := AuthoringPage{
		PageTitle: "Create Quiz",
		Title:     snap.Title,
		Questions: make([]DraftQuestionView, 0, len(snap.Questions)),
		Error:     errMsg,
	}
	for i, q := range snap.Questions {
		view := DraftQuestionView{
			ID:         q.ID,
			Number:     i + 1,
			Text:       q.Text,
			Type:       string(q.Type),
			IsCheckbox: q.Type.HasOptions(),
		}
		for _, t := range domain.QuestionTypes {
			view.Choices = append(view.Choices, TypeChoice{Value: string(t), Label: t.Label(), Selected: t == q.Type})
		}
		for j, opt := range q.Options {
			view.Options = append(view.Options, OptionView{Index: j, Text: opt})
		}
		page.Questions = append(page.Questions, view)
	}
	return page
}

// rfc3339 round-trips timestamps through the list form's hidden inputs.
func rfc3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
