package handler

import (
	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Register mounts the quiz routes and the health check on router.
func (h *QuizHandler) Register(router fiber.Router) {
	router.Get("/health", h.Health)

	quizzes := router.Group("/quizzes")
	quizzes.Post("/", h.CreateQuiz)
	quizzes.Get("/", h.ListQuizzes)
	quizzes.Get("/:id", h.GetQuiz)
	quizzes.Delete("/:id", h.DeleteQuiz)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a quiz and all of its questions in one transaction
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz with questions"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewFieldError("body", "Invalid request body")}
	}

	quiz, err := h.service.CreateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Returns every quiz, newest first, with its question count
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns one quiz with all of its questions
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Deletes a quiz; its questions are removed with it
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.DeleteQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	resp, err := h.service.DeleteQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
