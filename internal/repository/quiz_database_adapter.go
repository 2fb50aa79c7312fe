package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// Column aliases are quoted so Oracle returns lower-case names that match the db tags.
const (
	insertQuizQuery     = `INSERT INTO quizzes (title, created_at) VALUES (?, ?)`
	insertQuestionQuery = `INSERT INTO questions (quiz_id, question_text, question_type, options) VALUES (?, ?, ?, ?)`

	listQuizzesQuery = `SELECT
		q.id "id",
		q.title "title",
		q.created_at "created_at",
		COUNT(qs.id) "question_count"
	FROM quizzes q
	LEFT JOIN questions qs ON qs.quiz_id = q.id
	GROUP BY q.id, q.title, q.created_at
	ORDER BY q.created_at DESC, q.id DESC`

	getQuizQuery = `SELECT
		id "id",
		title "title",
		created_at "created_at"
	FROM quizzes
	WHERE id = ?`

	getQuestionsQuery = `SELECT
		id "id",
		quiz_id "quiz_id",
		question_text "question_text",
		question_type "question_type",
		options "options"
	FROM questions
	WHERE quiz_id = ?
	ORDER BY id`

	deleteQuizQuery = `DELETE FROM quizzes WHERE id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx
type QuizDatabaseAdapter struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewQuizDatabaseAdapter picks the SQL dialect from the connection's driver name.
func NewQuizDatabaseAdapter(db *sqlx.DB) (domain.QuizRepository, error) {
	dialect, err := DialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &QuizDatabaseAdapter{db: db, dialect: dialect}, nil
}

// InsertQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) InsertQuiz(ctx context.Context, title string, createdAt time.Time) (int64, error) {
	exec := GetExecutor(ctx, a.db)
	id, err := a.dialect.InsertReturningID(ctx, exec, insertQuizQuery, title, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quiz: %w", err)
	}
	return id, nil
}

// InsertQuestion implements domain.QuizRepository
func (a *QuizDatabaseAdapter) InsertQuestion(ctx context.Context, quizID int64, question domain.NewQuestion) (*domain.Question, error) {
	model := toModelQuestion(quizID, question)
	// encoded up front so every driver receives a plain string or NULL
	options, err := model.Options.Value()
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	exec := GetExecutor(ctx, a.db)
	id, err := a.dialect.InsertReturningID(ctx, exec, insertQuestionQuery,
		model.QuizID,
		model.Text,
		model.Type,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question for quiz %d: %w", quizID, err)
	}
	model.ID = id
	return toDomainQuestion(model), nil
}

// ListQuizzes implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context) ([]*domain.QuizSummary, error) {
	var rows []models.QuizSummary
	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listQuizzesQuery)); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]*domain.QuizSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, toDomainQuizSummary(&rows[i]))
	}
	return summaries, nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id int64) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuiz models.Quiz
	if err := exec.GetContext(ctx, &modelQuiz, exec.Rebind(getQuizQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %d: %w", id, err)
	}

	var modelQuestions []models.Question
	if err := exec.SelectContext(ctx, &modelQuestions, exec.Rebind(getQuestionsQuery), id); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %d: %w", id, err)
	}

	return toDomainQuiz(&modelQuiz, modelQuestions), nil
}

// DeleteQuiz implements domain.QuizRepository. Questions go with the quiz through ON DELETE CASCADE.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id int64) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(deleteQuizQuery), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func toModelQuestion(quizID int64, q domain.NewQuestion) *models.Question {
	m := &models.Question{
		QuizID: quizID,
		Text:   q.Text,
		Type:   string(q.Type),
	}
	if q.Type.HasOptions() {
		m.Options = models.Options(q.Options)
	}
	return m
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	q := &domain.Question{
		ID:     m.ID,
		QuizID: m.QuizID,
		Text:   m.Text,
		Type:   domain.QuestionType(m.Type),
	}
	if q.Type.HasOptions() && m.Options != nil {
		q.Options = append([]string(nil), m.Options...)
	}
	return q
}

func toDomainQuiz(m *models.Quiz, questions []models.Question) *domain.Quiz {
	if m == nil {
		return nil
	}
	quiz := &domain.Quiz{
		ID:        m.ID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		Questions: make([]*domain.Question, 0, len(questions)),
	}
	for i := range questions {
		quiz.Questions = append(quiz.Questions, toDomainQuestion(&questions[i]))
	}
	return quiz
}

func toDomainQuizSummary(m *models.QuizSummary) *domain.QuizSummary {
	if m == nil {
		return nil
	}
	return &domain.QuizSummary{
		ID:            m.ID,
		Title:         m.Title,
		QuestionCount: int(m.QuestionCount),
		CreatedAt:     m.CreatedAt,
	}
}
