package app

import (
	"encoding/json"
	"math"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"image-quiz-service/internal/domain"
)

// Raw record field names. Image fields are listed in precedence order.
var imageFields = []string{"image", "img"}

const (
	fieldID          = "id"
	fieldChoices     = "choices"
	fieldCorrect     = "correct"
	fieldAnswerIndex = "answerIndex"
)

// Normalize converts a raw record into a Question. It never fails: missing or
// misshapen fields fall back to defaults.
func Normalize(raw any) domain.Question {
	q, _ := Inspect(raw)
	return q
}

// Inspect normalizes raw and reports every default that had to be applied.
//
//	image    <- first non-empty string of image, img; else ""
//	choices  <- choices when it is a sequence; padded with the placeholder or truncated to 4
//	correct  <- correct when it is a label; integral answerIndex in [0,3] when correct is unset; else ア
//	id       <- id as display text; absent or null yields "" with HasID unset
func Inspect(raw any) (domain.Question, []domain.Issue) {
	fields, _ := raw.(map[string]any)

	var issues []domain.Issue
	q := domain.Question{ID: cast.ToString(fields[fieldID]), HasID: fields[fieldID] != nil}

	for _, name := range imageFields {
		if s, ok := fields[name].(string); ok && s != "" {
			q.Image = s
			break
		}
	}
	if q.Image == "" {
		issues = append(issues, domain.IssueImageMissing)
	}

	choices, ok := sequence(fields[fieldChoices])
	if !ok && fields[fieldChoices] != nil {
		issues = append(issues, domain.IssueChoicesNotSequence)
	}
	switch {
	case len(choices) < domain.ChoiceCount:
		issues = append(issues, domain.IssueChoicesPadded)
	case len(choices) > domain.ChoiceCount:
		issues = append(issues, domain.IssueChoicesTruncated)
	}
	for i := range q.Choices {
		if i < len(choices) {
			q.Choices[i] = cast.ToString(choices[i])
		} else {
			q.Choices[i] = domain.Placeholder
		}
	}

	label, ok := correctLabel(fields)
	if !ok {
		issues = append(issues, domain.IssueCorrectDefaulted)
	}
	q.Correct = label

	return q, issues
}

// NormalizeAll normalizes every record. Defaulted correct answers usually mean an
// authoring mistake in the question data, so they are logged as warnings.
func NormalizeAll(raws []any, log *zap.Logger) []domain.Question {
	questions := make([]domain.Question, 0, len(raws))
	for i, raw := range raws {
		q, issues := Inspect(raw)
		for _, issue := range issues {
			fields := []zap.Field{
				zap.Int("record", i),
				zap.String("id", q.ID),
				zap.String("issue", string(issue)),
			}
			if issue == domain.IssueCorrectDefaulted {
				log.Warn("question has no valid correct answer, defaulting to first label",
					append(fields, zap.String("label", string(q.Correct)))...)
				continue
			}
			log.Debug("question record normalized with defaults", fields...)
		}
		questions = append(questions, q)
	}
	return questions
}

// correctLabel reads answerIndex only when correct is absent, null or empty.
// Any other invalid correct value defaults to the first label.
func correctLabel(fields map[string]any) (domain.Label, bool) {
	raw := fields[fieldCorrect]
	if s, ok := raw.(string); ok && s != "" {
		if l := domain.Label(s); l.Valid() {
			return l, true
		}
		return domain.Labels[0], false
	}
	if raw != nil && raw != "" {
		return domain.Labels[0], false
	}
	if i, ok := integral(fields[fieldAnswerIndex]); ok {
		if l, ok := domain.LabelAt(i); ok {
			return l, true
		}
	}
	return domain.Labels[0], false
}

func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

// integral accepts numbers only; numeric strings are not indexes.
func integral(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return integral(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
