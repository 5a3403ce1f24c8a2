package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"image-quiz-service/internal/domain"
)

// SessionRepository tracks live play sessions (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Add(session *Controller)
	Get(id string) (*Controller, bool)
	Delete(id string)
	Count() int
}

// QuizService contains the quiz use cases shared by every UI transport.
type QuizService struct {
	sessions  SessionRepository
	questions QuestionRepository
	setID     string
	opts      Options
	log       *zap.Logger
}

func NewQuizService(store SessionRepository, questions QuestionRepository, setID string, opts Options, log *zap.Logger) *QuizService {
	return &QuizService{
		sessions:  store,
		questions: questions,
		setID:     setID,
		opts:      opts,
		log:       log,
	}
}

// Questions returns the normalized questions of the configured set, or the fallback set.
func (s *QuizService) Questions(ctx context.Context) []domain.Question {
	return LoadQuestions(ctx, s.questions, s.setID, s.log)
}

// StartSession loads questions once, binds a new session to sink and starts play.
func (s *QuizService) StartSession(ctx context.Context, sink domain.Sink) *Controller {
	questions := s.Questions(ctx)
	session := NewController(uuid.NewString(), sink, s.opts, s.log)
	s.sessions.Add(session)
	session.Start(questions)
	return session
}

// Session looks up a live session.
func (s *QuizService) Session(id string) (*Controller, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// EndSession stops the session's timers and forgets it.
func (s *QuizService) EndSession(id string) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(id)
}

// ActiveSessions reports how many sessions are live.
func (s *QuizService) ActiveSessions() int {
	return s.sessions.Count()
}
