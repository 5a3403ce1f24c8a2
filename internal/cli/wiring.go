package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"image-quiz-service/internal/app"
	"image-quiz-service/internal/config"
	"image-quiz-service/internal/infra/memory"
	pgstore "image-quiz-service/internal/infra/postgres"
	redisstore "image-quiz-service/internal/infra/redis"
	"image-quiz-service/internal/infra/source"
	"image-quiz-service/internal/logger"
)

// deps holds the wired dependencies shared by start and play.
type deps struct {
	cfg       config.Config
	log       *zap.Logger
	redis     *redis.Client
	pool      *pgxpool.Pool
	questions app.QuestionRepository
	sessions  app.SessionRepository
}

func loadConfigAndLogger(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func newDeps(ctx context.Context, configPath string) (*deps, error) {
	cfg, log, err := loadConfigAndLogger(configPath)
	if err != nil {
		return nil, err
	}
	rt := &deps{cfg: cfg, log: log}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return nil, err
		}
		rt.pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Redis.Addr != "" {
		rt.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	loader := rt.questionLoader()
	quizTTL := config.Duration(cfg.Quiz.TTL, 10*time.Minute)
	if rt.redis != nil {
		rt.questions = redisstore.NewQuestionRepository(rt.redis, loader, quizTTL, log)
		rt.sessions = redisstore.NewSessionStore(rt.redis, config.Duration(cfg.Redis.TTL, 10*time.Minute), log)
	} else {
		rt.questions = memory.NewQuestionRepository(loader, quizTTL)
		rt.sessions = memory.NewSessionStore()
	}
	return rt, nil
}

// questionLoader picks the configured source: Postgres, then HTTP, then a local
// file. With none configured every session plays the built-in questions.
func (rt *deps) questionLoader() memory.QuestionLoader {
	cfg := rt.cfg
	switch {
	case rt.pool != nil:
		rt.log.Info("question source: postgres", zap.String("set", cfg.SetID()))
		return pgstore.NewQuestionLoader(rt.pool)
	case cfg.Source.URL != "":
		rt.log.Info("question source: http", zap.String("url", cfg.Source.URL))
		return source.NewHTTPLoader(cfg.Source.URL, config.Duration(cfg.Source.Timeout, 10*time.Second))
	case cfg.Source.File != "":
		rt.log.Info("question source: file", zap.String("path", cfg.Source.File))
		return source.NewFileLoader(cfg.Source.File)
	default:
		rt.log.Info("question source: built-in")
		return memory.NewStaticQuestionLoader(nil)
	}
}

func (rt *deps) service() *app.QuizService {
	opts := app.Options{
		CorrectDelay:   config.Duration(rt.cfg.Quiz.CorrectDelay, app.DefaultCorrectDelay),
		IncorrectDelay: config.Duration(rt.cfg.Quiz.IncorrectDelay, app.DefaultIncorrectDelay),
	}
	return app.NewQuizService(rt.sessions, rt.questions, rt.cfg.SetID(), opts, rt.log)
}

func (rt *deps) Close() {
	if rt.pool != nil {
		rt.pool.Close()
	}
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	_ = rt.log.Sync()
}
