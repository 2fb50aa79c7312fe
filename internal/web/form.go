package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/draft"
	"quiz-builder/internal/dto"
)

const (
	actionRefresh        = "refresh"
	actionAddQuestion    = "add-question"
	actionRemoveQuestion = "remove-question"
	actionAddOption      = "add-option"
	actionRemoveOption   = "remove-option"
	actionSubmit         = "submit"
	actionCancel         = "cancel"
)

// formAction is the button pressed on the authoring form, e.g. "remove-option:01J...:2".
type formAction struct {
	Kind       string
	QuestionID string
	Option     int
}

func parseAction(raw string) (formAction, error) {
	parts := strings.Split(raw, ":")
	a := formAction{Kind: parts[0]}
	switch a.Kind {
	case "", actionRefresh:
		a.Kind = actionRefresh
		return a, nil
	case actionAddQuestion, actionSubmit, actionCancel:
		if len(parts) == 1 {
			return a, nil
		}
	case actionRemoveQuestion, actionAddOption:
		if len(parts) == 2 && parts[1] != "" {
			a.QuestionID = parts[1]
			return a, nil
		}
	case actionRemoveOption:
		if len(parts) == 3 && parts[1] != "" {
			n, err := strconv.Atoi(parts[2])
			if err == nil && n >= 0 {
				a.QuestionID = parts[1]
				a.Option = n
				return a, nil
			}
		}
	}
	return formAction{}, fmt.Errorf("unknown form action %q", raw)
}

// applyForm copies the posted field values into the draft. Questions missing
// from the form are left untouched.
func applyForm(store *draft.Store, form url.Values) {
	store.SetTitle(form.Get("title"))

	for _, q := range store.Snapshot().Questions {
		rawType, ok := form["type_"+q.ID]
		if !ok {
			continue
		}
		next := q
		if t := domain.QuestionType(firstValue(rawType)); t.Valid() {
			next = q.WithType(t)
		}
		next.Text = form.Get("text_" + q.ID)
		// option inputs belong to the type that rendered them
		if next.Type.HasOptions() && q.Type == next.Type {
			next.Options = append([]string{}, form["option_"+q.ID]...)
		}
		store.UpdateQuestion(q.ID, next)
	}
}

// applyAction runs any non-terminal action against the draft.
func applyAction(store *draft.Store, a formAction) {
	switch a.Kind {
	case actionAddQuestion:
		store.AddQuestion(draft.Question{Type: domain.QuestionTypeInput})
	case actionRemoveQuestion:
		store.RemoveQuestion(a.QuestionID)
	case actionAddOption:
		if q, ok := findQuestion(store.Snapshot(), a.QuestionID); ok && q.Type.HasOptions() {
			q.Options = append(q.Options, "")
			store.UpdateQuestion(q.ID, q)
		}
	case actionRemoveOption:
		if q, ok := findQuestion(store.Snapshot(), a.QuestionID); ok && a.Option < len(q.Options) {
			q.Options = append(q.Options[:a.Option], q.Options[a.Option+1:]...)
			store.UpdateQuestion(q.ID, q)
		}
	}
}

// checkDraft mirrors the server's shape rules so obvious mistakes never leave the browser.
func checkDraft(snap draft.Snapshot) string {
	if strings.TrimSpace(snap.Title) == "" {
		return MsgTitleRequired
	}
	if len(snap.Questions) == 0 {
		return MsgNoQuestions
	}
	for _, q := range snap.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return MsgQuestionText
		}
	}
	for _, q := range snap.Questions {
		if q.Type.HasOptions() && len(nonBlank(q.Options)) == 0 {
			return MsgNoOptions
		}
	}
	return ""
}

// newCreateRequest builds the API payload; blank options are dropped.
func newCreateRequest(snap draft.Snapshot) *dto.CreateQuizRequest {
	req := &dto.CreateQuizRequest{
		Title:     strings.TrimSpace(snap.Title),
		Questions: make([]dto.CreateQuestionRequest, 0, len(snap.Questions)),
	}
	for _, q := range snap.Questions {
		cq := dto.CreateQuestionRequest{Text: strings.TrimSpace(q.Text), Type: string(q.Type)}
		if q.Type.HasOptions() {
			cq.Options = nonBlank(q.Options)
		}
		req.Questions = append(req.Questions, cq)
	}
	return req
}

func findQuestion(snap draft.Snapshot, id string) (draft.Question, bool) {
	for _, q := range snap.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return draft.Question{}, false
}

func nonBlank(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
