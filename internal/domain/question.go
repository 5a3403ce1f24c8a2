package domain

// Question is the canonical, normalized form of a quiz item. It is never mutated after normalization.
type Question struct {
	ID      string              `json:"id,omitempty"` // display/debug only
	Image   string              `json:"image"`
	Choices [ChoiceCount]string `json:"choices"`
	Correct Label               `json:"correct"`
	// HasID is set when the record carried a non-null id, even an empty one.
	HasID   bool                `json:"-"`
}

// ChoiceText returns the display text for label, substituting the placeholder for empty slots.
func (q Question) ChoiceText(l Label) string {
	i := l.Index()
	if i < 0 {
		return ""
	}
	return DisplayText(q.Choices[i])
}

// CorrectText is the display text of the correct choice.
func (q Question) CorrectText() string {
	return q.ChoiceText(q.Correct)
}

// DisplayText renders an empty choice as the placeholder.
func DisplayText(text string) string {
	if text == "" {
		return Placeholder
	}
	return text
}

// Issue names a default the normalizer had to apply to a raw record.
type Issue string

const (
	IssueImageMissing       Issue = "image_missing"
	IssueChoicesNotSequence Issue = "choices_not_sequence"
	IssueChoicesPadded      Issue = "choices_padded"
	IssueChoicesTruncated   Issue = "choices_truncated"
	IssueCorrectDefaulted   Issue = "correct_defaulted"
)

// Phase is the per-question state of a session.
type Phase string

const (
	PhaseAwaitingAnswer  Phase = "awaiting_answer"
	PhaseLockedCorrect   Phase = "locked_correct"
	PhaseLockedIncorrect Phase = "locked_incorrect"
	PhaseFinished        Phase = "finished"
)

// SessionSnapshot is a read-only copy of a session's state.
type SessionSnapshot struct {
	ID         string `json:"id"`
	Generation uint64 `json:"generation"`
	PlayOrder  []int  `json:"playOrder"`
	Position   int    `json:"position"`
	Total      int    `json:"total"`
	Score      int    `json:"score"`
	Locked     bool   `json:"locked"`
	Phase      Phase  `json:"phase"`
}
