package domain

// CommandType discriminates the declarative UI commands a session emits.
type CommandType string

const (
	CommandControls      CommandType = "controls"
	CommandRender        CommandType = "render"
	CommandClearFeedback CommandType = "clearFeedback"
	CommandFeedback      CommandType = "feedback"
	CommandHUD           CommandType = "hud"
	CommandResult        CommandType = "result"
	CommandAnnounce      CommandType = "announce"
)

// Feedback marks shown over the question image.
const (
	MarkCorrect   = "〇"
	MarkIncorrect = "×"
)

// Command is one instruction for the UI collaborator.
type Command struct {
	Type    CommandType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

// Sink receives commands from a session. Emit is called while the session
// holds its lock, so implementations must not call back into the session.
type Sink interface {
	Emit(cmd Command)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(cmd Command)

func (f SinkFunc) Emit(cmd Command) { f(cmd) }

// Choice is a labeled choice as displayed.
type Choice struct {
	Label Label  `json:"label"`
	Text  string `json:"text"`
}

// RenderPayload shows a question and replaces any prior feedback.
type RenderPayload struct {
	Image    string              `json:"image"`
	Alt      string              `json:"alt"`
	Choices  [ChoiceCount]Choice `json:"choices"`
	Position int                 `json:"position"`
	Total    int                 `json:"total"`
}

// FeedbackPayload reports the outcome of an accepted answer.
type FeedbackPayload struct {
	Picked       Label  `json:"picked"`
	Correct      bool   `json:"correct"`
	Mark         string `json:"mark"`
	CorrectLabel Label  `json:"correctLabel,omitempty"`
	CorrectText  string `json:"correctText,omitempty"`
}

// HUDPayload carries progress and running score.
type HUDPayload struct {
	Progress  string `json:"progress"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Score     int    `json:"score"`
	ScoreText string `json:"scoreText"`
}

// ResultPayload is the final tally.
type ResultPayload struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// AnnouncePayload is plain text for a live region.
type AnnouncePayload struct {
	Text string `json:"text"`
}

// ControlsPayload toggles the skip action and the result panel.
type ControlsPayload struct {
	SkipEnabled   bool `json:"skipEnabled"`
	ResultVisible bool `json:"resultVisible"`
}
