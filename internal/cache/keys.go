package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizbuilder"

	ServiceQuiz      = "quiz"
	ObjectQuizDetail = "detail"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizDetailKey is the key holding one quiz with its questions.
func QuizDetailKey(quizID int64) string {
	return GenerateCacheKey(ServiceQuiz, ObjectQuizDetail, strconv.FormatInt(quizID, 10))
}
