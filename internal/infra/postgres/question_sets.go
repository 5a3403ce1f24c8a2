package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"image-quiz-service/internal/infra/source"
)

// QuestionSet is a stored raw question set. Data keeps the source JSON as-is;
// normalization happens when a session loads it.
type QuestionSet struct {
	bun.BaseModel `bun:"table:question_sets"`

	ID        string    `bun:"id,pk"`
	Data      string    `bun:"data,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// SaveQuestionSet upserts a raw question set. data must be a JSON array.
func SaveQuestionSet(ctx context.Context, db *bun.DB, setID string, data []byte) (int, error) {
	records, err := source.DecodeRecords(data)
	if err != nil {
		return 0, err
	}
	set := &QuestionSet{ID: setID, Data: string(data), UpdatedAt: time.Now()}
	_, err = db.NewInsert().
		Model(set).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("save question set: %w", err)
	}
	return len(records), nil
}
