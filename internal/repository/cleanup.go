package repository

import (
	"context"
	"fmt"
)

const (
	clearQuestionsQuery = `DELETE FROM questions`
	clearQuizzesQuery   = `DELETE FROM quizzes`
)

// ClearQuizzes removes every question and quiz and returns the number of quizzes removed.
// Run it inside WithTransaction to make the two deletes atomic.
func ClearQuizzes(ctx context.Context, db DBTX) (int64, error) {
	exec := GetExecutor(ctx, db)
	if _, err := exec.ExecContext(ctx, clearQuestionsQuery); err != nil {
		return 0, fmt.Errorf("failed to clear questions: %w", err)
	}
	result, err := exec.ExecContext(ctx, clearQuizzesQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to clear quizzes: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
