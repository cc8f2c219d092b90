// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ghstats",
		Short: "A CLI tool to compare GitHub user activity.",
		Long: `ghstats fetches profile and contribution data of one or more GitHub users
for a date range and prints a report or renders a comparison chart.
The GITHUB_API_TOKEN environment variable must hold a GitHub token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLimitsCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). Any error exits the process with status 1.
func Execute() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports err, followed by the raw GitHub payload when there is one.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if payload, ok := domain.UpstreamPayload(err); ok {
		fmt.Fprintf(w, "%s\n", payload)
	}
}

// newLogger builds the logger for a command. Everything below warning is
// discarded unless --verbose is set.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
