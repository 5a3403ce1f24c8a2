// Package terminal plays a quiz session on a line-oriented terminal.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"image-quiz-service/internal/domain"
)

// Renderer prints session commands as text. It is safe for use from timer goroutines.
type Renderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Emit(cmd domain.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch p := cmd.Payload.(type) {
	case domain.RenderPayload:
		fmt.Fprintf(r.out, "\n[%d/%d] %s (%s)\n", p.Position+1, p.Total, p.Alt, p.Image)
		for i, choice := range p.Choices {
			fmt.Fprintf(r.out, "  %d) %s %s\n", i+1, choice.Label, choice.Text)
		}
	case domain.FeedbackPayload:
		fmt.Fprintf(r.out, "%s ", p.Mark)
	case domain.AnnouncePayload:
		fmt.Fprintln(r.out, p.Text)
	case domain.HUDPayload:
		fmt.Fprintf(r.out, "  %s  %s\n", p.Progress, p.ScoreText)
	case domain.ResultPayload:
		fmt.Fprintf(r.out, "\n%s\n", p.Text)
	case domain.ControlsPayload:
		if p.SkipEnabled {
			fmt.Fprintln(r.out, "keys: 1-4 answer, s skip, r restart, q quit")
		} else {
			fmt.Fprintln(r.out, "keys: r restart, q quit")
		}
	}
}
