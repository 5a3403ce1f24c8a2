package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"image-quiz-service/internal/transport/terminal"
)

// NewPlayCmd plays one session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a quiz session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := newDeps(ctx, *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			service := rt.service()
			session := service.StartSession(ctx, terminal.NewRenderer(cmd.OutOrStdout()))
			defer service.EndSession(session.ID())

			return terminal.ReadInputs(ctx, os.Stdin, session)
		},
	}
}
