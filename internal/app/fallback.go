package app

import (
	"go.uber.org/zap"

	"image-quiz-service/internal/domain"
)

// fallbackRecords is the built-in question set used when no source yields questions.
func fallbackRecords() []any {
	return []any{
		map[string]any{
			"id":      1,
			"image":   "images/q01.jpg",
			"choices": []any{"サンプルA", "サンプルB", "サンプルC", "サンプルD"},
			"correct": "ア",
		},
		map[string]any{
			"id":      2,
			"image":   "images/q02.jpg",
			"choices": []any{"りんご", "みかん", "バナナ", "ぶどう"},
			"correct": "ウ",
		},
		map[string]any{
			"id":      3,
			"image":   "images/q03.jpg",
			"choices": []any{"HTTP:80", "HTTPS:443", "FTP:22", "SMTP:110"},
			"correct": "イ",
		},
	}
}

// FallbackQuestions returns the normalized built-in question set.
func FallbackQuestions() []domain.Question {
	return NormalizeAll(fallbackRecords(), zap.NewNop())
}
