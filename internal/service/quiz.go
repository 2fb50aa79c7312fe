package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"quiz-builder/internal/cache"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/validation"

	"go.uber.org/zap"
)

const (
	msgCreateFailed  = "Failed to create quiz"
	msgListFailed    = "Failed to fetch quizzes"
	msgFetchFailed   = "Failed to fetch quiz"
	msgDeleteFailed  = "Failed to delete quiz"
	msgQuizDeleted   = "Quiz deleted successfully"
	defaultDetailTTL = 10 * time.Minute
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	GetQuiz(ctx context.Context, idParam string) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, idParam string) (*dto.DeleteQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	validator *validation.Validator
	cache     domain.Cache // nil disables the detail cache
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewQuizService creates a new instance of quizService. cache may be nil.
func NewQuizService(
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	cache domain.Cache,
	cacheTTL time.Duration,
) QuizService {
	if cacheTTL <= 0 {
		cacheTTL = defaultDetailTTL
	}
	return &quizService{
		repo:      repo,
		txManager: txManager,
		validator: validation.NewValidator(),
		cache:     cache,
		cacheTTL:  cacheTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateQuiz implements QuizService. The quiz and its questions are written in one transaction.
func (s *quizService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	newQuiz, verrs := s.validator.ValidateCreateQuiz(req)
	if len(verrs) > 0 {
		return nil, verrs
	}

	quiz := &domain.Quiz{
		Title:     newQuiz.Title,
		CreatedAt: s.now(),
		Questions: make([]*domain.Question, 0, len(newQuiz.Questions)),
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := s.repo.InsertQuiz(txCtx, quiz.Title, quiz.CreatedAt)
		if err != nil {
			return err
		}
		quiz.ID = id

		for _, q := range newQuiz.Questions {
			question, err := s.repo.InsertQuestion(txCtx, id, q)
			if err != nil {
				return err
			}
			quiz.Questions = append(quiz.Questions, question)
		}
		return nil
	})
	if err != nil {
		logger.Get().Error("Failed to create quiz", zap.Error(err), zap.String("title", quiz.Title))
		return nil, domain.NewPersistenceError(msgCreateFailed, err)
	}

	logger.Get().Info("Quiz created",
		zap.Int64("quiz_id", quiz.ID),
		zap.Int("question_count", len(quiz.Questions)))
	return dto.NewQuizResponse(quiz), nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	summaries, err := s.repo.ListQuizzes(ctx)
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return nil, domain.NewPersistenceError(msgListFailed, err)
	}
	return dto.NewQuizSummaryResponses(summaries), nil
}

// GetQuiz implements QuizService. Reads go through the detail cache when one is configured.
func (s *quizService) GetQuiz(ctx context.Context, idParam string) (*dto.QuizResponse, error) {
	id, err := parseQuizID(idParam)
	if err != nil {
		return nil, err
	}

	if cached := s.cachedQuiz(ctx, id); cached != nil {
		return cached, nil
	}

	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		logger.Get().Error("Failed to fetch quiz", zap.Error(err), zap.Int64("quiz_id", id))
		return nil, domain.NewPersistenceError(msgFetchFailed, err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError()
	}

	resp := dto.NewQuizResponse(quiz)
	s.storeQuiz(ctx, resp)
	return resp, nil
}

// DeleteQuiz implements QuizService
func (s *quizService) DeleteQuiz(ctx context.Context, idParam string) (*dto.DeleteQuizResponse, error) {
	id, err := parseQuizID(idParam)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteQuiz(ctx, id)
	if err != nil {
		logger.Get().Error("Failed to delete quiz", zap.Error(err), zap.Int64("quiz_id", id))
		return nil, domain.NewPersistenceError(msgDeleteFailed, err)
	}
	if !deleted {
		return nil, domain.NewQuizNotFoundError()
	}

	s.evictQuiz(ctx, id)
	logger.Get().Info("Quiz deleted", zap.Int64("quiz_id", id))
	return &dto.DeleteQuizResponse{Message: msgQuizDeleted, ID: id}, nil
}

// parseQuizID accepts only a positive base-10 integer with no sign or surrounding text.
func parseQuizID(idParam string) (int64, error) {
	if idParam == "" {
		return 0, domain.NewInvalidQuizIDError()
	}
	for _, r := range idParam {
		if r < '0' || r > '9' {
			return 0, domain.NewInvalidQuizIDError()
		}
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidQuizIDError()
	}
	return id, nil
}

// Cache failures are logged and never fail the request.

func (s *quizService) cachedQuiz(ctx context.Context, id int64) *dto.QuizResponse {
	if s.cache == nil {
		return nil
	}
	key := cache.QuizDetailKey(id)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Quiz cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	var resp dto.QuizResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Get().Warn("Discarding corrupt quiz cache entry", zap.Error(err), zap.String("key", key))
		return nil
	}
	logger.Get().Debug("Quiz cache hit", zap.String("key", key))
	return &resp
}

func (s *quizService) storeQuiz(ctx context.Context, resp *dto.QuizResponse) {
	if s.cache == nil {
		return
	}
	key := cache.QuizDetailKey(resp.ID)
	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *quizService) evictQuiz(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	key := cache.QuizDetailKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("Quiz cache eviction failed", zap.Error(err), zap.String("key", key))
	}
}
