package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/naka-gawa/ghstats/internal/config"
	"github.com/naka-gawa/ghstats/internal/gateway"
	"github.com/naka-gawa/ghstats/internal/report"
	"github.com/spf13/cobra"
)

func newLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Shows the remaining GitHub API quota of the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(cmd)

			conf, err := config.Load(logger)
			if err != nil {
				return err
			}
			githubGateway, err := gateway.NewGitHubGateway(conf, logger.WithField("component", "gateway"))
			if err != nil {
				return fmt.Errorf("failed to create GitHub gateway: %w", err)
			}

			budgets, err := githubGateway.FetchRateLimits(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s %s\n", report.PadRight("Resource", 10), report.PadLeft("Limit", 8), report.PadLeft("Remaining", 10), "Reset")
			for _, b := range budgets {
				fmt.Fprintf(out, "%s %s %s %s\n",
					report.PadRight(b.Resource, 10),
					report.PadLeft(fmt.Sprint(b.Limit), 8),
					report.PadLeft(fmt.Sprint(b.Remaining), 10),
					b.Reset.Format(time.RFC3339))
			}
			return nil
		},
	}
}
