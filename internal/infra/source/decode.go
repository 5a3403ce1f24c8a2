package source

import (
	"encoding/json"
	"fmt"

	"image-quiz-service/internal/domain"
)

// DecodeRecords parses a question-set payload. The payload must be a JSON array;
// its elements are returned untyped for the normalizer.
func DecodeRecords(data []byte) ([]any, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse question set: %w", err)
	}
	records, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("parse question set: %w", domain.ErrMalformedQuestionSet)
	}
	return records, nil
}
