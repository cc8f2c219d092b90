package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/naka-gawa/ghstats/internal/chart"
	"github.com/naka-gawa/ghstats/internal/config"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/naka-gawa/ghstats/internal/gateway"
	"github.com/naka-gawa/ghstats/internal/report"
	"github.com/naka-gawa/ghstats/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	logins []string
	from   string
	to     string
	branch string
	chart  string
	out    string
	json   bool
}

func newStatsCmd() *cobra.Command {
	var opts statsOptions

	statsCmd := &cobra.Command{
		Use:   "stats <login>... --from YYYY-MM-DD --to YYYY-MM-DD",
		Short: "Reports or charts the activity of GitHub users",
		Long: `Fetches profile, repositories, issues, pull requests and contribution counts
of every given user for the date range, one user after another.
Without --chart a text report is printed. Any failure aborts the whole batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(cmd)
			opts.logins = args

			var mode chart.Mode
			if opts.chart != "" {
				var err error
				if mode, err = chart.ParseMode(opts.chart); err != nil {
					return err
				}
			}

			conf, err := config.Load(logger)
			if err != nil {
				return err
			}

			// Inject dependencies and run the main business logic.
			githubGateway, err := gateway.NewGitHubGateway(conf, logger.WithField("component", "gateway"))
			if err != nil {
				return fmt.Errorf("failed to create GitHub gateway: %w", err)
			}
			return runStats(ctx, githubGateway, mode, opts, cmd.OutOrStdout(), logger)
		},
	}

	statsCmd.Flags().StringVar(&opts.from, "from", "", "Start date of the contribution window (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&opts.to, "to", "", "End date of the contribution window (YYYY-MM-DD)")
	statsCmd.Flags().StringVarP(&opts.chart, "chart", "c", "", "Render a chart instead of the report: pie, types or churn")
	statsCmd.Flags().StringVarP(&opts.out, "out", "o", "", "Chart output file (default ghstats-<chart>.html)")
	statsCmd.Flags().StringVar(&opts.branch, "branch", gateway.DefaultBranch, "Branch summarised for contributed repositories")
	statsCmd.Flags().BoolVar(&opts.json, "json", false, "Print the fetched records as JSON")
	_ = statsCmd.MarkFlagRequired("from")
	_ = statsCmd.MarkFlagRequired("to")
	statsCmd.MarkFlagsMutuallyExclusive("chart", "json")

	return statsCmd
}

func runStats(ctx context.Context, fetcher gateway.Fetcher, mode chart.Mode, opts statsOptions, stdout io.Writer, logger logrus.FieldLogger) error {
	aggregator := usecase.NewAggregator(fetcher, logger.WithField("component", "aggregator"))
	activities, err := aggregator.Aggregate(ctx, usecase.BatchRequest{
		Logins: opts.logins,
		From:   opts.from,
		To:     opts.to,
		Branch: opts.branch,
	})
	if err != nil {
		return err
	}

	switch {
	case mode != "":
		return writeChart(mode, opts.out, activities, stdout)
	case opts.json:
		return report.WriteJSON(stdout, activities)
	default:
		summary, err := usecase.Summarize(activities)
		if err != nil {
			return fmt.Errorf("failed to summarize batch: %w", err)
		}
		return report.WriteText(stdout, activities, report.Options{Branch: opts.branch, Summary: summary})
	}
}

func writeChart(mode chart.Mode, path string, activities []*domain.UserActivity, stdout io.Writer) error {
	if path == "" {
		path = fmt.Sprintf("ghstats-%s.html", mode)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := chart.Render(f, mode, activities); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	fmt.Fprintf(stdout, "Chart written to %s\n", path)
	return nil
}
