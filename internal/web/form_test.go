package web

import (
	"net/url"
	"testing"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/draft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    formAction
		wantErr bool
	}{
		{raw: "", want: formAction{Kind: actionRefresh}},
		{raw: "refresh", want: formAction{Kind: actionRefresh}},
		{raw: "add-question", want: formAction{Kind: actionAddQuestion}},
		{raw: "submit", want: formAction{Kind: actionSubmit}},
		{raw: "cancel", want: formAction{Kind: actionCancel}},
		{raw: "remove-question:q1", want: formAction{Kind: actionRemoveQuestion, QuestionID: "q1"}},
		{raw: "add-option:q1", want: formAction{Kind: actionAddOption, QuestionID: "q1"}},
		{raw: "remove-option:q1:2", want: formAction{Kind: actionRemoveOption, QuestionID: "q1", Option: 2}},
		{raw: "remove-option:q1:-1", wantErr: true},
		{raw: "remove-option:q1", wantErr: true},
		{raw: "remove-question:", wantErr: true},
		{raw: "submit:now", wantErr: true},
		{raw: "explode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAction(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyForm(t *testing.T) {
	store := draft.NewStore()
	boolQ := store.AddQuestion(draft.Question{Type: domain.QuestionTypeBoolean})
	boxQ := store.AddQuestion(draft.Question{Type: domain.QuestionTypeCheckbox, Options: []string{"a"}})
	untouched := store.AddQuestion(draft.Question{Text: "keep", Type: domain.QuestionTypeInput})

	form := url.Values{
		"title":              {"My quiz"},
		"type_" + boolQ.ID:   {"input"},
		"text_" + boolQ.ID:   {"Name?"},
		"type_" + boxQ.ID:    {"checkbox"},
		"text_" + boxQ.ID:    {"Pick"},
		"option_" + boxQ.ID:  {"a", "b", ""},
		"option_" + boolQ.ID: {"ignored"},
	}
	applyForm(store, form)

	snap := store.Snapshot()
	assert.Equal(t, "My quiz", snap.Title)
	require.Len(t, snap.Questions, 3)

	assert.Equal(t, domain.QuestionTypeInput, snap.Questions[0].Type)
	assert.Equal(t, "Name?", snap.Questions[0].Text)
	assert.Nil(t, snap.Questions[0].Options)

	assert.Equal(t, "Pick", snap.Questions[1].Text)
	assert.Equal(t, []string{"a", "b", ""}, snap.Questions[1].Options)

	assert.Equal(t, untouched, snap.Questions[2])
}

func TestApplyForm_SwitchToCheckboxStartsEmpty(t *testing.T) {
	store := draft.NewStore()
	q := store.AddQuestion(draft.Question{Type: domain.QuestionTypeInput})

	applyForm(store, url.Values{
		"type_" + q.ID:   {"checkbox"},
		"text_" + q.ID:   {"Pick"},
		"option_" + q.ID: {"stale"},
	})

	got := store.Snapshot().Questions[0]
	assert.Equal(t, domain.QuestionTypeCheckbox, got.Type)
	assert.Equal(t, []string{}, got.Options)
}

func TestApplyForm_UnknownTypeKeepsCurrent(t *testing.T) {
	store := draft.NewStore()
	q := store.AddQuestion(draft.Question{Type: domain.QuestionTypeBoolean})

	applyForm(store, url.Values{"type_" + q.ID: {"essay"}, "text_" + q.ID: {"T?"}})

	got := store.Snapshot().Questions[0]
	assert.Equal(t, domain.QuestionTypeBoolean, got.Type)
	assert.Equal(t, "T?", got.Text)
}

func TestApplyAction(t *testing.T) {
	store := draft.NewStore()

	applyAction(store, formAction{Kind: actionAddQuestion})
	q := store.Snapshot().Questions[0]
	assert.Equal(t, domain.QuestionTypeInput, q.Type)

	// options only exist on checkbox questions
	applyAction(store, formAction{Kind: actionAddOption, QuestionID: q.ID})
	assert.Nil(t, store.Snapshot().Questions[0].Options)

	q = q.WithType(domain.QuestionTypeCheckbox)
	store.UpdateQuestion(q.ID, q)
	applyAction(store, formAction{Kind: actionAddOption, QuestionID: q.ID})
	applyAction(store, formAction{Kind: actionAddOption, QuestionID: q.ID})
	assert.Equal(t, []string{"", ""}, store.Snapshot().Questions[0].Options)

	applyAction(store, formAction{Kind: actionRemoveOption, QuestionID: q.ID, Option: 5})
	assert.Len(t, store.Snapshot().Questions[0].Options, 2)
	applyAction(store, formAction{Kind: actionRemoveOption, QuestionID: q.ID, Option: 0})
	assert.Len(t, store.Snapshot().Questions[0].Options, 1)

	applyAction(store, formAction{Kind: actionRemoveQuestion, QuestionID: q.ID})
	assert.Empty(t, store.Snapshot().Questions)
}

func TestCheckDraft(t *testing.T) {
	valid := []draft.Question{{ID: "1", Text: "Q", Type: domain.QuestionTypeBoolean}}

	tests := []struct {
		name string
		snap draft.Snapshot
		want string
	}{
		{"blank title", draft.Snapshot{Title: "  ", Questions: valid}, MsgTitleRequired},
		{"no questions", draft.Snapshot{Title: "T"}, MsgNoQuestions},
		{"blank text", draft.Snapshot{Title: "T", Questions: []draft.Question{{Text: " ", Type: domain.QuestionTypeInput}}}, MsgQuestionText},
		{"checkbox without options", draft.Snapshot{Title: "T", Questions: []draft.Question{
			{Text: "Pick", Type: domain.QuestionTypeCheckbox, Options: []string{"", "  "}},
		}}, MsgNoOptions},
		{"text is checked before options", draft.Snapshot{Title: "T", Questions: []draft.Question{
			{Text: "Pick", Type: domain.QuestionTypeCheckbox},
			{Text: "", Type: domain.QuestionTypeInput},
		}}, MsgQuestionText},
		{"ok", draft.Snapshot{Title: "T", Questions: valid}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkDraft(tt.snap))
		})
	}
}

func TestNewCreateRequest(t *testing.T) {
	req := newCreateRequest(draft.Snapshot{
		Title: "  Quiz ",
		Questions: []draft.Question{
			{Text: " Is it? ", Type: domain.QuestionTypeBoolean, Options: []string{"stray"}},
			{Text: "Pick", Type: domain.QuestionTypeCheckbox, Options: []string{"A", " ", "B "}},
		},
	})

	assert.Equal(t, "Quiz", req.Title)
	require.Len(t, req.Questions, 2)
	assert.Equal(t, "Is it?", req.Questions[0].Text)
	assert.Equal(t, "boolean", req.Questions[0].Type)
	assert.Nil(t, req.Questions[0].Options)
	assert.Equal(t, []string{"A", "B"}, req.Questions[1].Options)
}
