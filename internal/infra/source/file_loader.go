package source

import (
	"context"
	"fmt"
	"os"

	"image-quiz-service/internal/domain"
)

// FileLoader reads a single question set from a local JSON file. The set ID is ignored.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) LoadQuestionSet(_ context.Context, _ string) ([]any, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return DecodeRecords(data)
}
