package commands

import (
	"github.com/spf13/cobra"

	"salesdash/internal/cli"
	applog "salesdash/internal/log"
)

type seedOutput struct {
	Source     string `json:"source"`
	Skipped    bool   `json:"skipped"`
	Existing   int64  `json:"existing"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	DurationMs int64  `json:"durationMs"`
}

// SeedCommandHandler loads the dataset into an empty database.
type SeedCommandHandler struct {
	env *Env
}

// SeedCmd runs the same seed-if-empty routine as the server start-up.
func (h *SeedCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) error {
	repo, err := h.env.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	publisher, closePublisher := cli.InitPublisher(h.env.Logger.WithComponent(applog.ComponentAMQP), h.env.Config)
	defer closePublisher()

	res, err := cli.RunSeed(cmd.Context(), h.env.Logger, h.env.Config, repo, publisher)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), seedOutput{
		Source:     res.Source,
		Skipped:    res.Skipped,
		Existing:   res.Existing,
		Fetched:    res.Fetched,
		Inserted:   res.Inserted,
		DurationMs: res.Duration.Milliseconds(),
	})
}

// InitSeedCommands registers the seed command.
func InitSeedCommands(rootCmd *cobra.Command, env *Env) error {
	handler := &SeedCommandHandler{env: env}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the product dataset if the database is empty",
		RunE:  handler.SeedCmd,
	}
	seedCmd.Flags().StringVar(&env.Config.SeedURL, "url", env.Config.SeedURL, "Dataset URL for the http seed source")
	rootCmd.AddCommand(seedCmd)

	return nil
}
