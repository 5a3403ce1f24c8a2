package app

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"image-quiz-service/internal/domain"
)

const (
	DefaultCorrectDelay   = 800 * time.Millisecond
	DefaultIncorrectDelay = 2 * time.Second
)

// Options tunes the automatic advance after an answer. The incorrect delay is
// longer so the revealed correct answer can be read.
type Options struct {
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.CorrectDelay <= 0 {
		o.CorrectDelay = DefaultCorrectDelay
	}
	if o.IncorrectDelay <= 0 {
		o.IncorrectDelay = DefaultIncorrectDelay
	}
	return o
}

// Controller drives one single-player play-through and emits UI commands to its sink.
// All operations are serialized; timer callbacks go through the same lock.
type Controller struct {
	id        string
	sink      domain.Sink
	scheduler Scheduler
	rnd       *rand.Rand
	opts      Options
	log       *zap.Logger

	mu            sync.Mutex
	questions     []domain.Question
	state         session
	cancelAdvance func()
	closed        bool
}

// session is the mutable state of one play-through. It is replaced wholesale on reset.
type session struct {
	generation uint64
	playOrder  []int
	position   int
	score      int
	locked     bool
	phase      domain.Phase
}

// advanceTicket stamps a scheduled advance with the state it was scheduled against.
type advanceTicket struct {
	generation uint64
	position   int
}

func NewController(id string, sink domain.Sink, opts Options, log *zap.Logger) *Controller {
	return NewControllerWithScheduler(id, sink, opts, log, TimerScheduler{}, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewControllerWithScheduler allows deterministic timers and shuffles in tests.
func NewControllerWithScheduler(id string, sink domain.Sink, opts Options, log *zap.Logger, scheduler Scheduler, rnd *rand.Rand) *Controller {
	return &Controller{
		id:        id,
		sink:      sink,
		scheduler: scheduler,
		rnd:       rnd,
		opts:      opts.withDefaults(),
		log:       log.With(zap.String("session", id)),
		state:     session{phase: domain.PhaseFinished},
	}
}

func (c *Controller) ID() string { return c.id }

// Start begins a new play-through over questions. An empty list falls back to the built-in set.
func (c *Controller) Start(questions []domain.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if len(questions) == 0 {
		c.log.Warn("no questions supplied, starting with fallback questions")
		questions = FallbackQuestions()
	}
	c.questions = questions
	c.resetLocked()
}

// Restart begins a new play-through over the current questions.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if len(c.questions) == 0 {
		c.questions = FallbackQuestions()
	}
	c.resetLocked()
}

// PresentCurrent renders the question at the current position, or finishes
// the session when every question has been played.
func (c *Controller) PresentCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.presentLocked()
}

// SubmitAnswer accepts at most one answer per question. It reports whether the
// answer was accepted; locked, finished, or unknown-label input is ignored.
func (c *Controller) SubmitAnswer(label domain.Label) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.phase != domain.PhaseAwaitingAnswer || c.state.locked || !label.Valid() {
		return false
	}
	if c.state.position >= len(c.questions) {
		return false
	}

	c.state.locked = true
	q := c.currentLocked()
	correct := label == q.Correct

	feedback := domain.FeedbackPayload{Picked: label, Correct: correct}
	var announce string
	delay := c.opts.CorrectDelay
	if correct {
		c.state.score++
		c.state.phase = domain.PhaseLockedCorrect
		feedback.Mark = domain.MarkCorrect
		announce = "正解"
	} else {
		c.state.phase = domain.PhaseLockedIncorrect
		feedback.Mark = domain.MarkIncorrect
		feedback.CorrectLabel = q.Correct
		feedback.CorrectText = q.CorrectText()
		announce = fmt.Sprintf("不正解。正解は %s：%s", q.Correct, feedback.CorrectText)
		delay = c.opts.IncorrectDelay
	}

	c.emit(domain.CommandFeedback, feedback)
	c.emit(domain.CommandAnnounce, domain.AnnouncePayload{Text: announce})
	c.emitHUDLocked()
	c.scheduleAdvanceLocked(delay)

	c.log.Debug("answer accepted",
		zap.Int("position", c.state.position),
		zap.String("picked", string(label)),
		zap.Bool("correct", correct),
	)
	return true
}

// PressKey maps digit keys 1-4 to the choice at that position. Other keys are ignored.
func (c *Controller) PressKey(key string) bool {
	if len(key) != 1 || key[0] < '1' || key[0] > '4' {
		return false
	}
	return c.SubmitAnswer(domain.Labels[key[0]-'1'])
}

// Advance moves to the next question. It is not gated by the answer lock.
// At the end it finishes the session; once finished it does nothing.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.phase == domain.PhaseFinished {
		return
	}
	c.advanceLocked()
}

// Skip is the UI hook for Advance.
func (c *Controller) Skip() { c.Advance() }

// Finish ends the session and reports the final tally.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.finishLocked()
}

// Close cancels pending work; every later call is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelPendingLocked()
	c.state.generation++
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() domain.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	order := make([]int, len(c.state.playOrder))
	copy(order, c.state.playOrder)
	return domain.SessionSnapshot{
		ID:         c.id,
		Generation: c.state.generation,
		PlayOrder:  order,
		Position:   c.state.position,
		Total:      len(c.questions),
		Score:      c.state.score,
		Locked:     c.state.locked,
		Phase:      c.state.phase,
	}
}

func (c *Controller) resetLocked() {
	c.cancelPendingLocked()
	c.state = session{
		generation: c.state.generation + 1,
		playOrder:  c.rnd.Perm(len(c.questions)),
		phase:      domain.PhaseAwaitingAnswer,
	}
	c.log.Info("session started", zap.Uint64("generation", c.state.generation), zap.Int("questions", len(c.questions)))

	c.emit(domain.CommandControls, domain.ControlsPayload{SkipEnabled: true})
	c.presentLocked()
}

func (c *Controller) presentLocked() {
	if c.state.position >= len(c.questions) {
		c.finishLocked()
		return
	}

	q := c.currentLocked()
	c.emit(domain.CommandClearFeedback, nil)
	payload := domain.RenderPayload{
		Image:    q.Image,
		Alt:      "問題画像 " + altID(q, c.state.position),
		Position: c.state.position,
		Total:    len(c.questions),
	}
	for i, l := range domain.Labels {
		payload.Choices[i] = domain.Choice{Label: l, Text: domain.DisplayText(q.Choices[i])}
	}
	c.emit(domain.CommandRender, payload)
	c.emitHUDLocked()
}

func (c *Controller) advanceLocked() {
	c.cancelPendingLocked()
	if c.state.position >= len(c.questions) {
		c.finishLocked()
		return
	}
	c.state.locked = false
	c.state.phase = domain.PhaseAwaitingAnswer
	c.state.position++
	c.presentLocked()
}

func (c *Controller) finishLocked() {
	if c.state.phase == domain.PhaseFinished {
		return
	}
	c.cancelPendingLocked()
	c.state.phase = domain.PhaseFinished
	total := len(c.questions)

	c.emit(domain.CommandClearFeedback, nil)
	c.emit(domain.CommandResult, domain.ResultPayload{
		Score: c.state.score,
		Total: total,
		Text:  fmt.Sprintf("正解数：%d / %d", c.state.score, total),
	})
	c.emit(domain.CommandControls, domain.ControlsPayload{SkipEnabled: false, ResultVisible: true})
	c.emit(domain.CommandAnnounce, domain.AnnouncePayload{Text: "終了"})

	c.log.Info("session finished", zap.Int("score", c.state.score), zap.Int("total", total))
}

func (c *Controller) scheduleAdvanceLocked(delay time.Duration) {
	c.cancelPendingLocked()
	ticket := advanceTicket{generation: c.state.generation, position: c.state.position}
	c.cancelAdvance = c.scheduler.Schedule(delay, func() { c.advanceDue(ticket) })
}

// advanceDue runs a scheduled advance unless a restart, skip, or close made it stale.
func (c *Controller) advanceDue(ticket advanceTicket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || ticket.generation != c.state.generation || ticket.position != c.state.position || !c.state.locked {
		c.log.Debug("stale advance ignored",
			zap.Uint64("ticket_generation", ticket.generation),
			zap.Int("ticket_position", ticket.position),
		)
		return
	}
	c.cancelAdvance = nil
	c.advanceLocked()
}

func (c *Controller) cancelPendingLocked() {
	if c.cancelAdvance != nil {
		c.cancelAdvance()
		c.cancelAdvance = nil
	}
}

func (c *Controller) currentLocked() domain.Question {
	return c.questions[c.state.playOrder[c.state.position]]
}

func (c *Controller) emitHUDLocked() {
	total := len(c.questions)
	c.emit(domain.CommandHUD, domain.HUDPayload{
		Progress:  fmt.Sprintf("%d / %d", c.state.position, total),
		Position:  c.state.position,
		Total:     total,
		Score:     c.state.score,
		ScoreText: fmt.Sprintf("正解 %d", c.state.score),
	})
}

func (c *Controller) emit(t domain.CommandType, payload any) {
	c.sink.Emit(domain.Command{Type: t, Payload: payload})
}

// altID names the image by its id when the record had one, else by its 1-based position.
func altID(q domain.Question, position int) string {
	if q.HasID {
		return q.ID
	}
	return strconv.Itoa(position + 1)
}
