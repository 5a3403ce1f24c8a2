package app

import (
	"context"

	"go.uber.org/zap"

	"image-quiz-service/internal/domain"
)

// QuestionRepository loads raw question records (from cache or a backing store).
type QuestionRepository interface {
	GetQuestionSet(ctx context.Context, setID string) ([]any, error)
}

// LoadQuestions fetches and normalizes a question set. Any source failure, or an
// empty set, is logged and replaced by the built-in fallback questions so a
// session can always start.
func LoadQuestions(ctx context.Context, repo QuestionRepository, setID string, log *zap.Logger) []domain.Question {
	if repo == nil {
		log.Warn("no question source configured, starting with fallback questions")
		return FallbackQuestions()
	}

	raws, err := repo.GetQuestionSet(ctx, setID)
	if err == nil && len(raws) == 0 {
		err = domain.ErrEmptyQuestionSet
	}
	if err != nil {
		log.Warn("failed to load question set, starting with fallback questions",
			zap.String("set", setID),
			zap.Error(err),
		)
		return FallbackQuestions()
	}

	questions := NormalizeAll(raws, log)
	log.Info("question set loaded", zap.String("set", setID), zap.Int("count", len(questions)))
	return questions
}
