package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"quiz-builder/internal/apiclient"
	"quiz-builder/internal/draft"
	"quiz-builder/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	CreateQuizFunc  func(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	ListQuizzesFunc func(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	GetQuizFunc     func(ctx context.Context, id int64) (*dto.QuizResponse, error)
	DeleteQuizFunc  func(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error)
}

func (f *fakeAPI) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if f.CreateQuizFunc != nil {
		return f.CreateQuizFunc(ctx, req)
	}
	panic("fakeAPI.CreateQuizFunc not implemented")
}

func (f *fakeAPI) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	if f.ListQuizzesFunc != nil {
		return f.ListQuizzesFunc(ctx)
	}
	panic("fakeAPI.ListQuizzesFunc not implemented")
}

func (f *fakeAPI) GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error) {
	if f.GetQuizFunc != nil {
		return f.GetQuizFunc(ctx, id)
	}
	panic("fakeAPI.GetQuizFunc not implemented")
}

func (f *fakeAPI) DeleteQuiz(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error) {
	if f.DeleteQuizFunc != nil {
		return f.DeleteQuizFunc(ctx, id)
	}
	panic("fakeAPI.DeleteQuizFunc not implemented")
}

// browser replays the session cookie like a real client would.
type browser struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newBrowser(t *testing.T, api QuizAPI) (*browser, *draft.Registry) {
	drafts := draft.NewRegistry(time.Hour)
	return &browser{t: t, app: NewApp(api, drafts, time.Hour)}, drafts
}

func (b *browser) do(method, path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			b.cookie = c
		}
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	resp.Body.Close()
	return resp, string(raw)
}

var createdAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestIndex(t *testing.T) {
	b, _ := newBrowser(t, &fakeAPI{})
	resp, body := b.do(http.MethodGet, "/", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Quiz Builder | Quiz Builder</title>")
	assert.Contains(t, body, `href="/create"`)
	require.NotNil(t, b.cookie)
}

func TestList(t *testing.T) {
	api := &fakeAPI{
		ListQuizzesFunc: func(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
			return []dto.QuizSummaryResponse{
				{ID: 1, Title: "General Knowledge Quiz", QuestionCount: 1, CreatedAt: createdAt},
				{ID: 2, Title: "JavaScript Basics", QuestionCount: 3, CreatedAt: createdAt},
			}, nil
		},
	}
	b, _ := newBrowser(t, api)

	resp, body := b.do(http.MethodGet, "/quizzes?success="+url.QueryEscape(MsgQuizCreated), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, MsgQuizCreated)
	assert.Contains(t, body, `<a href="/quizzes/2">JavaScript Basics</a>`)
	assert.Contains(t, body, "1 question ")
	assert.Contains(t, body, "3 questions")
	assert.Contains(t, body, "May 4, 2026 10:30 UTC")
	assert.Contains(t, body, `formaction="/quizzes/1/delete"`)
	assert.Contains(t, body, `name="row_created" value="2026-05-04T10:30:00Z"`)
}

func TestList_Empty(t *testing.T) {
	api := &fakeAPI{
		ListQuizzesFunc: func(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
			return []dto.QuizSummaryResponse{}, nil
		},
	}
	b, _ := newBrowser(t, api)

	_, body := b.do(http.MethodGet, "/quizzes", nil)
	assert.Contains(t, body, "No quizzes yet.")
	assert.Contains(t, body, "Create First Quiz")
}

func TestList_Error(t *testing.T) {
	api := &fakeAPI{
		ListQuizzesFunc: func(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	b, _ := newBrowser(t, api)

	_, body := b.do(http.MethodGet, "/quizzes", nil)
	assert.Contains(t, body, MsgListFailed)
	assert.NotContains(t, body, "connection refused")
	assert.NotContains(t, body, "Create First Quiz")
}

func listForm(rows ...QuizRow) url.Values {
	form := url.Values{}
	for _, r := range rows {
		form.Add("row_id", strconv.FormatInt(r.ID, 10))
		form.Add("row_title", r.Title)
		form.Add("row_count", strconv.Itoa(r.QuestionCount))
		form.Add("row_created", rfc3339(r.CreatedAt))
	}
	return form
}

func TestDelete_RemovesRowWithoutRefetch(t *testing.T) {
	var deleted int64
	api := &fakeAPI{
		DeleteQuizFunc: func(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error) {
			deleted = id
			return &dto.DeleteQuizResponse{Message: MsgQuizDeleted, ID: id}, nil
		},
	}
	b, _ := newBrowser(t, api)

	form := listForm(
		QuizRow{ID: 1, Title: "Keep me", QuestionCount: 2, CreatedAt: createdAt},
		QuizRow{ID: 2, Title: "Drop me", QuestionCount: 1, CreatedAt: createdAt},
	)
	resp, body := b.do(http.MethodPost, "/quizzes/2/delete", form)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), deleted)
	assert.Contains(t, body, MsgQuizDeleted)
	assert.Contains(t, body, "Keep me")
	assert.NotContains(t, body, "Drop me")
}

func TestDelete_LastRowShowsEmptyState(t *testing.T) {
	api := &fakeAPI{
		DeleteQuizFunc: func(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error) {
			return &dto.DeleteQuizResponse{Message: MsgQuizDeleted, ID: id}, nil
		},
	}
	b, _ := newBrowser(t, api)

	_, body := b.do(http.MethodPost, "/quizzes/5/delete",
		listForm(QuizRow{ID: 5, Title: "Only", QuestionCount: 1, CreatedAt: createdAt}))
	assert.Contains(t, body, "Create First Quiz")
}

func TestDelete_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", &apiclient.Error{Status: 404, Message: "Quiz not found", Code: "NOT_FOUND"}, "Quiz not found"},
		{"fallback", errors.New("timeout"), MsgDeleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				DeleteQuizFunc: func(ctx context.Context, id int64) (*dto.DeleteQuizResponse, error) {
					return nil, tt.err
				},
			}
			b, _ := newBrowser(t, api)

			_, body := b.do(http.MethodPost, "/quizzes/3/delete",
				listForm(QuizRow{ID: 3, Title: "Still here", QuestionCount: 1, CreatedAt: createdAt}))
			assert.Contains(t, body, tt.want)
			assert.Contains(t, body, "Still here")
		})
	}
}

func TestDetail(t *testing.T) {
	api := &fakeAPI{
		GetQuizFunc: func(ctx context.Context, id int64) (*dto.QuizResponse, error) {
			assert.Equal(t, int64(7), id)
			return &dto.QuizResponse{
				ID:        7,
				Title:     "General Knowledge Quiz",
				CreatedAt: createdAt,
				Questions: []dto.QuestionResponse{
					{ID: 1, QuizID: 7, Text: "Is the Earth round?", Type: "boolean"},
					{ID: 2, QuizID: 7, Text: "Pick the primes", Type: "checkbox", Options: []string{"2", "4", "5"}},
				},
			}, nil
		},
	}
	b, _ := newBrowser(t, api)

	resp, body := b.do(http.MethodGet, "/quizzes/7", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>General Knowledge Quiz</h1>")
	assert.Contains(t, body, "2 questions")
	assert.Contains(t, body, "Question 1 &middot; True/False")
	assert.Contains(t, body, "Question 2 &middot; Multiple Choice")
	assert.Contains(t, body, "<li>4</li>")
}

func TestDetail_NotFound(t *testing.T) {
	api := &fakeAPI{
		GetQuizFunc: func(ctx context.Context, id int64) (*dto.QuizResponse, error) {
			return nil, &apiclient.Error{Status: http.StatusNotFound, Message: "Quiz not found"}
		},
	}
	b, _ := newBrowser(t, api)

	for _, path := range []string{"/quizzes/99", "/quizzes/abc", "/quizzes/0"} {
		resp, body := b.do(http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body, MsgQuizNotFound, path)
	}
}

func TestDetail_Failure(t *testing.T) {
	api := &fakeAPI{
		GetQuizFunc: func(ctx context.Context, id int64) (*dto.QuizResponse, error) {
			return nil, errors.New("boom")
		},
	}
	b, _ := newBrowser(t, api)

	resp, body := b.do(http.MethodGet, "/quizzes/1", nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, MsgFetchFailed)
}

func TestAuthoring_EditFlow(t *testing.T) {
	b, drafts := newBrowser(t, &fakeAPI{})

	resp, body := b.do(http.MethodGet, "/create", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Create Quiz")
	require.NotNil(t, b.cookie)

	resp, _ = b.do(http.MethodPost, "/create", url.Values{"title": {"Draft"}, "action": {"add-question"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/create", resp.Header.Get("Location"))

	store, ok := drafts.Get(b.cookie.Value)
	require.True(t, ok)
	snap := store.Snapshot()
	assert.Equal(t, "Draft", snap.Title)
	require.Len(t, snap.Questions, 1)
	id := snap.Questions[0].ID

	b.do(http.MethodPost, "/create", url.Values{
		"title":      {"Draft"},
		"type_" + id: {"checkbox"},
		"text_" + id: {"Pick one"},
		"action":     {"add-option:" + id},
	})

	_, body = b.do(http.MethodGet, "/create", nil)
	assert.Contains(t, body, `value="Draft"`)
	assert.Contains(t, body, `value="Pick one"`)
	assert.Contains(t, body, `<option value="checkbox" selected>Multiple Choice</option>`)
	assert.Contains(t, body, `name="option_`+id+`"`)
	assert.Equal(t, []string{""}, store.Snapshot().Questions[0].Options)
}

func TestAuthoring_SubmitValidation(t *testing.T) {
	b, _ := newBrowser(t, &fakeAPI{})
	b.do(http.MethodGet, "/create", nil)

	resp, body := b.do(http.MethodPost, "/create", url.Values{"title": {" "}, "action": {"submit"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, MsgTitleRequired)

	_, body = b.do(http.MethodPost, "/create", url.Values{"title": {"T"}, "action": {"submit"}})
	assert.Contains(t, body, MsgNoQuestions)
}

func TestAuthoring_SubmitCreates(t *testing.T) {
	var received *dto.CreateQuizRequest
	api := &fakeAPI{
		CreateQuizFunc: func(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
			received = req
			return &dto.QuizResponse{ID: 10, Title: req.Title, CreatedAt: createdAt}, nil
		},
	}
	b, drafts := newBrowser(t, api)
	b.do(http.MethodPost, "/create", url.Values{"action": {"add-question"}})
	store, ok := drafts.Get(b.cookie.Value)
	require.True(t, ok)
	id := store.Snapshot().Questions[0].ID

	resp, _ := b.do(http.MethodPost, "/create", url.Values{
		"title":      {"Capitals"},
		"type_" + id: {"input"},
		"text_" + id: {"Capital of France?"},
		"action":     {"submit"},
	})

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/quizzes?success="+url.QueryEscape(MsgQuizCreated), resp.Header.Get("Location"))
	require.NotNil(t, received)
	assert.Equal(t, "Capitals", received.Title)
	require.Len(t, received.Questions, 1)
	assert.Equal(t, "input", received.Questions[0].Type)

	_, ok = drafts.Get(b.cookie.Value)
	assert.False(t, ok, "draft is released after a successful create")
}

func TestAuthoring_SubmitKeepsDraftOnAPIError(t *testing.T) {
	api := &fakeAPI{
		CreateQuizFunc: func(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
			return nil, &apiclient.Error{Status: 400, Message: "Quiz title must be at most 255 characters"}
		},
	}
	b, drafts := newBrowser(t, api)
	b.do(http.MethodPost, "/create", url.Values{"action": {"add-question"}})
	store, _ := drafts.Get(b.cookie.Value)
	id := store.Snapshot().Questions[0].ID

	resp, body := b.do(http.MethodPost, "/create", url.Values{
		"title":      {"T"},
		"type_" + id: {"boolean"},
		"text_" + id: {"True?"},
		"action":     {"submit"},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Quiz title must be at most 255 characters")
	assert.Equal(t, "T", store.Snapshot().Title)
}

func TestAuthoring_Cancel(t *testing.T) {
	b, drafts := newBrowser(t, &fakeAPI{})
	b.do(http.MethodPost, "/create", url.Values{"title": {"Draft"}, "action": {"add-question"}})
	assert.Equal(t, 1, drafts.Len())

	resp, _ := b.do(http.MethodPost, "/create", url.Values{"action": {"cancel"}})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/quizzes", resp.Header.Get("Location"))
	assert.Equal(t, 0, drafts.Len())
}

func TestAuthoring_UnknownActionRendersErrorPage(t *testing.T) {
	b, _ := newBrowser(t, &fakeAPI{})
	resp, body := b.do(http.MethodPost, "/create", url.Values{"action": {"launch"}})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<title>Error | Quiz Builder</title>")
	assert.Contains(t, body, `<div class="banner error" role="alert">Invalid action</div>`)
	assert.NotContains(t, body, `"code"`)
}

func TestAuthoring_MalformedFormRendersErrorPage(t *testing.T) {
	b, _ := newBrowser(t, &fakeAPI{})

	req := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader("title=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := b.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "Invalid form")
	assert.Contains(t, string(raw), `href="/quizzes"`)
}

func TestUnknownRouteRendersErrorPage(t *testing.T) {
	b, _ := newBrowser(t, &fakeAPI{})
	resp, body := b.do(http.MethodGet, "/nope", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "<title>Error | Quiz Builder</title>")
	assert.Contains(t, body, "Cannot GET /nope")
}

func TestSessionsAreIsolated(t *testing.T) {
	drafts := draft.NewRegistry(time.Hour)
	app := NewApp(&fakeAPI{}, drafts, time.Hour)
	alice := &browser{t: t, app: app}
	bob := &browser{t: t, app: app}

	alice.do(http.MethodPost, "/create", url.Values{"title": {"Alice's quiz"}, "action": {"refresh"}})
	_, body := bob.do(http.MethodGet, "/create", nil)

	assert.NotContains(t, body, "Alice")
	assert.Equal(t, 2, drafts.Len())
}
