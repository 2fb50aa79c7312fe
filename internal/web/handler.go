package web

import (
	"net/url"
	"strconv"
	"time"

	"quiz-builder/internal/apiclient"
	"quiz-builder/internal/draft"
	"quiz-builder/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const layout = "layouts/main"

// Handler serves the browser pages on top of the Quiz API.
type Handler struct {
	api    QuizAPI
	drafts *draft.Registry
}

func NewHandler(api QuizAPI, drafts *draft.Registry) *Handler {
	return &Handler{api: api, drafts: drafts}
}

func (h *Handler) Register(router fiber.Router) {
	router.Get("/", h.Index)
	router.Get("/quizzes", h.List)
	router.Post("/quizzes/:id/delete", h.Delete)
	router.Get("/quizzes/:id", h.Detail)
	router.Get("/create", h.Authoring)
	router.Post("/create", h.SubmitAuthoring)
}

func (h *Handler) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"PageTitle": "Quiz Builder"}, layout)
}

// List renders every quiz. A success query parameter is shown as a banner.
func (h *Handler) List(c *fiber.Ctx) error {
	page := ListPage{PageTitle: "Quizzes", Success: c.Query("success")}

	quizzes, err := h.api.ListQuizzes(c.UserContext())
	if err != nil {
		logger.Get().Warn("Failed to list quizzes", zap.Error(err))
		page.Error = errorMessage(err, MsgListFailed)
		page.Success = ""
	} else {
		page.Quizzes = newQuizRows(quizzes)
	}
	return c.Render("list", page, layout)
}

// Delete removes one quiz and re-renders the rows the browser posted, minus
// the deleted one, without asking the API for the list again.
func (h *Handler) Delete(c *fiber.Ctx) error {
	form, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}
	rows := postedRows(form)
	page := ListPage{PageTitle: "Quizzes", Quizzes: rows}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		page.Error = MsgQuizNotFound
		return c.Status(fiber.StatusNotFound).Render("list", page, layout)
	}

	if _, err := h.api.DeleteQuiz(c.UserContext(), id); err != nil {
		logger.Get().Warn("Failed to delete quiz", zap.Int64("quiz_id", id), zap.Error(err))
		page.Error = errorMessage(err, MsgDeleteFailed)
		return c.Render("list", page, layout)
	}

	page.Quizzes = withoutRow(rows, id)
	page.Success = MsgQuizDeleted
	return c.Render("list", page, layout)
}

func (h *Handler) Detail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).
			Render("detail", DetailPage{PageTitle: MsgQuizNotFound, Error: MsgQuizNotFound}, layout)
	}

	quiz, err := h.api.GetQuiz(c.UserContext(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).
				Render("detail", DetailPage{PageTitle: MsgQuizNotFound, Error: MsgQuizNotFound}, layout)
		}
		logger.Get().Warn("Failed to fetch quiz", zap.Int64("quiz_id", id), zap.Error(err))
		msg := errorMessage(err, MsgFetchFailed)
		return c.Status(fiber.StatusBadGateway).Render("detail", DetailPage{PageTitle: "Quiz", Error: msg}, layout)
	}
	return c.Render("detail", newDetailPage(quiz), layout)
}

func (h *Handler) Authoring(c *fiber.Ctx) error {
	store := h.drafts.Open(sessionID(c))
	return c.Render("create", newAuthoringPage(store.Snapshot(), ""), layout)
}

// SubmitAuthoring applies the posted form to the session draft and then runs
// the pressed action. Edits redirect back to the form; submit posts the draft.
func (h *Handler) SubmitAuthoring(c *fiber.Ctx) error {
	form, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}
	action, err := parseAction(form.Get("action"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid action")
	}

	sid := sessionID(c)
	if action.Kind == actionCancel {
		h.drafts.Release(sid)
		return c.Redirect("/quizzes", fiber.StatusSeeOther)
	}

	store := h.drafts.Open(sid)
	applyForm(store, form)

	if action.Kind != actionSubmit {
		applyAction(store, action)
		return c.Redirect("/create", fiber.StatusSeeOther)
	}

	snap := store.Snapshot()
	if msg := checkDraft(snap); msg != "" {
		return c.Status(fiber.StatusUnprocessableEntity).Render("create", newAuthoringPage(snap, msg), layout)
	}

	quiz, err := h.api.CreateQuiz(c.UserContext(), newCreateRequest(snap))
	if err != nil {
		logger.Get().Warn("Failed to create quiz", zap.Error(err))
		return c.Render("create", newAuthoringPage(snap, errorMessage(err, MsgCreateFailed)), layout)
	}

	logger.Get().Info("Quiz created", zap.Int64("quiz_id", quiz.ID), zap.Int("questions", len(quiz.Questions)))
	store.Reset()
	h.drafts.Release(sid)
	return c.Redirect("/quizzes?success="+url.QueryEscape(MsgQuizCreated), fiber.StatusSeeOther)
}

// postedRows reads the hidden row_* inputs of the list form. Rows that do
// not parse are skipped.
func postedRows(form url.Values) []QuizRow {
	ids := form["row_id"]
	titles := form["row_title"]
	counts := form["row_count"]
	created := form["row_created"]

	rows := make([]QuizRow, 0, len(ids))
	for i, raw := range ids {
		if i >= len(titles) || i >= len(counts) || i >= len(created) {
			break
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		count, _ := strconv.Atoi(counts[i])
		at, _ := time.Parse(time.RFC3339, created[i])
		rows = append(rows, QuizRow{ID: id, Title: titles[i], QuestionCount: count, CreatedAt: at})
	}
	return rows
}

func withoutRow(rows []QuizRow, id int64) []QuizRow {
	out := make([]QuizRow, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
