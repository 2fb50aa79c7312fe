package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"quiz-builder/internal/config"
	"quiz-builder/internal/database"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/repository"
	"quiz-builder/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultSeedFile = "configs/seed_data/sample_quizzes.json"

func loadSeedFile(path string) ([]dto.CreateQuizRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var quizzes []dto.CreateQuizRequest
	if err := json.Unmarshal(raw, &quizzes); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return quizzes, nil
}

// seedQuizzes creates every quiz through the service so seeded data passes the same validation as API input.
func seedQuizzes(ctx context.Context, svc service.QuizService, quizzes []dto.CreateQuizRequest) ([]*dto.QuizResponse, error) {
	created := make([]*dto.QuizResponse, len(quizzes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range quizzes {
		i := i
		req := &quizzes[i]
		g.Go(func() error {
			quiz, err := svc.CreateQuiz(gctx, req)
			if err != nil {
				return fmt.Errorf("seed %q: %w", req.Title, err)
			}
			created[i] = quiz
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return created, nil
}

func main() {
	seedFile := flag.String("file", defaultSeedFile, "path to the seed JSON file")
	keep := flag.Bool("keep", false, "keep existing quizzes instead of clearing them first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()
	log.Info("Seeding database...", zap.String("file", *seedFile))

	quizzes, err := loadSeedFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.Error(err))
	}

	db, err := database.NewSQLXDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo, err := repository.NewQuizDatabaseAdapter(db)
	if err != nil {
		log.Fatal("Failed to create quiz repository", zap.Error(err))
	}
	txManager := repository.NewTransactionManagerAdapter(db)

	if !*keep {
		err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
			n, err := repository.ClearQuizzes(ctx, db)
			if err == nil {
				log.Info("Cleared existing quizzes", zap.Int64("count", n))
			}
			return err
		})
		if err != nil {
			log.Fatal("Failed to clear existing data", zap.Error(err))
		}
	}

	svc := service.NewQuizService(repo, txManager, nil, 0)
	created, err := seedQuizzes(ctx, svc, quizzes)
	if err != nil {
		log.Fatal("Error seeding database", zap.Error(err))
	}

	fmt.Println("Seeded quizzes:")
	for _, q := range created {
		fmt.Printf("- %s (%d questions)\n", q.Title, len(q.Questions))
	}
}
