package terminal

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Session is the part of the quiz session driven by terminal input.
type Session interface {
	PressKey(key string) bool
	Skip()
	Restart()
}

// ReadInputs feeds lines from in to the session until EOF, "q", or ctx is done.
// Digits 1-4 answer, "s" skips, "r" restarts; anything else is ignored.
func ReadInputs(ctx context.Context, in io.Reader, session Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case line := <-lines:
			switch key := strings.ToLower(strings.TrimSpace(line)); key {
			case "q", "quit":
				return nil
			case "s", "skip":
				session.Skip()
			case "r", "restart":
				session.Restart()
			default:
				session.PressKey(key)
			}
		}
	}
}
