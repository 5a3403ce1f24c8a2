package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pgstore "image-quiz-service/internal/infra/postgres"
)

// NewSeedCmd stores a raw data.json question set in Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var setID string
	cmd := &cobra.Command{
		Use:   "seed <data.json>",
		Short: "Store a question set file in Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfigAndLogger(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			if setID == "" {
				setID = cfg.SetID()
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read question set: %w", err)
			}
			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}

			db := pgstore.OpenBun(cfg.Postgres.URL)
			defer db.Close()
			n, err := pgstore.SaveQuestionSet(ctx, db, setID, data)
			if err != nil {
				return err
			}
			log.Info("question set stored", zap.String("set", setID), zap.Int("records", n))
			return nil
		},
	}
	cmd.Flags().StringVar(&setID, "set", "", "question set ID (defaults to source.set)")
	return cmd
}
