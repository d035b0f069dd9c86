package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"salesdash/internal/core"
	applog "salesdash/internal/log"
	"salesdash/internal/stats"
)

const queryTimeout = 30 * time.Second

// QueryCommandHandler prints the month aggregates.
type QueryCommandHandler struct {
	env *Env
}

type queryFunc func(ctx context.Context, svc *stats.Service, month core.Month) (any, error)

func (h *QueryCommandHandler) run(query queryFunc) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		raw, err := cmd.Flags().GetString("month")
		if err != nil {
			return err
		}
		month, ok := core.ParseMonth(raw)
		if !ok {
			h.env.Logger.Warn("Month is not a two-digit value between 01 and 12, no rows will match", applog.FieldMonth, raw)
		}

		repo, err := h.env.openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
		defer cancel()

		result, err := query(ctx, stats.NewService(repo), month)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}
}

// InitQueryCommands registers stats, bar-chart, pie-chart and combined.
func InitQueryCommands(rootCmd *cobra.Command, env *Env) error {
	handler := &QueryCommandHandler{env: env}

	queries := []struct {
		use   string
		short string
		query queryFunc
	}{
		{
			use:   "stats",
			short: "Print total items, sale amount and sold/not-sold counts for a month",
			query: func(ctx context.Context, svc *stats.Service, m core.Month) (any, error) {
				return svc.Statistics(ctx, m)
			},
		},
		{
			use:   "bar-chart",
			short: "Print item counts per price range for a month",
			query: func(ctx context.Context, svc *stats.Service, m core.Month) (any, error) {
				return svc.BarChart(ctx, m)
			},
		},
		{
			use:   "pie-chart",
			short: "Print item counts per category for a month",
			query: func(ctx context.Context, svc *stats.Service, m core.Month) (any, error) {
				return svc.PieChart(ctx, m)
			},
		},
		{
			use:   "combined",
			short: "Print statistics, bar chart and pie chart for a month",
			query: func(ctx context.Context, svc *stats.Service, m core.Month) (any, error) {
				return svc.Combined(ctx, m)
			},
		},
	}

	for _, q := range queries {
		cmd := &cobra.Command{
			Use:   q.use,
			Short: q.short,
			RunE:  handler.run(q.query),
		}
		cmd.Flags().StringP("month", "m", "", "Month as two digits, 01 to 12")
		if err := cmd.MarkFlagRequired("month"); err != nil {
			return err
		}
		rootCmd.AddCommand(cmd)
	}

	return nil
}
