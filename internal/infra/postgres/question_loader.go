package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"image-quiz-service/internal/domain"
	"image-quiz-service/internal/infra/source"
)

// QuestionLoader loads raw question sets stored as JSONB.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestionSet(ctx context.Context, setID string) ([]any, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, setID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load question set %q: %w", setID, domain.ErrQuestionSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	return source.DecodeRecords(raw)
}
