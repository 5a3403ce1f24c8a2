package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"image-quiz-service/internal/app"
	"image-quiz-service/internal/domain"
	pgstore "image-quiz-service/internal/infra/postgres"
	infraredis "image-quiz-service/internal/infra/redis"
)

const questionSetJSON = `[
	{"id": 1, "image": "images/q01.jpg", "choices": ["a", "b", "c", "d"], "correct": "イ"},
	{"id": 2, "img": "images/q02.jpg", "choices": ["x", "y"], "answerIndex": 5}
]`

func TestStoredQuestionSetPlaysEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedQuestionSet(t, ctx, pgURL, "animals", questionSetJSON)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	log := zap.NewNop()
	questionRepo := infraredis.NewQuestionRepository(redisClient, pgstore.NewQuestionLoader(pool), 5*time.Minute, log)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute, log)
	service := app.NewQuizService(sessionStore, questionRepo, "animals", app.Options{CorrectDelay: 10 * time.Millisecond, IncorrectDelay: 20 * time.Millisecond}, log)

	questions := service.Questions(ctx)
	if len(questions) != 2 {
		t.Fatalf("expected 2 stored questions, got %d", len(questions))
	}
	byID := map[string]domain.Question{}
	for _, q := range questions {
		byID[q.ID] = q
	}
	if q := byID["2"]; q.Image != "images/q02.jpg" || q.Correct != domain.LabelA || q.Choices[3] != domain.Placeholder {
		t.Fatalf("unexpected normalized question %+v", q)
	}

	sink := &resultSink{done: make(chan domain.ResultPayload, 1)}
	session := service.StartSession(ctx, sink)
	defer service.EndSession(session.ID())

	for i := 0; i < len(questions); i++ {
		snap := session.Snapshot()
		q := questions[snap.PlayOrder[snap.Position]]
		if !session.SubmitAnswer(q.Correct) {
			t.Fatalf("answer %d rejected", i)
		}
		waitForPosition(t, session, i+1)
	}

	select {
	case result := <-sink.done:
		if result.Score != 2 || result.Total != 2 {
			t.Fatalf("expected 2 / 2, got %+v", result)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not finish")
	}

	// Unknown sets fall back to the built-in questions.
	missing := app.NewQuizService(sessionStore, questionRepo, "missing", app.Options{}, log)
	if got := len(missing.Questions(ctx)); got != len(app.FallbackQuestions()) {
		t.Fatalf("expected fallback questions for unknown set, got %d", got)
	}
}

type resultSink struct {
	once sync.Once
	done chan domain.ResultPayload
}

func (s *resultSink) Emit(cmd domain.Command) {
	if result, ok := cmd.Payload.(domain.ResultPayload); ok {
		s.once.Do(func() { s.done <- result })
	}
}

func waitForPosition(t *testing.T, session *app.Controller, position int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if session.Snapshot().Position >= position {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session did not advance to %d", position)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedQuestionSet(t *testing.T, ctx context.Context, dsn, setID, data string) {
	t.Helper()
	db := pgstore.OpenBun(dsn)
	defer db.Close()

	// Postgres may accept TCP before it accepts queries.
	var err error
	for i := 0; i < 20; i++ {
		if _, err = pgstore.Migrate(ctx, db); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	n, err := pgstore.SaveQuestionSet(ctx, db, setID, []byte(data))
	if err != nil {
		t.Fatalf("save question set: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 records stored, got %d", n)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
