// Package cmd is for command line interactions with the piquant read
// bias simulator.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	// logger writes leveled diagnostics to stderr. Commands share it so
	// the --log-level flag applies everywhere.
	logger = logrus.New()
)

// logLevels are the severities accepted by --log-level.
var logLevels = []string{"debug", "info", "warning", "error", "fatal"}

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "piquant",
	Short: "Simulate and post-process RNA-seq reads for benchmarking transcript quantification",
	Long: `piquant prepares simulated RNA-seq data for benchmarking transcript
quantification tools. Its core command, "bias", selects a subset of reads
whose 5' nucleotide composition is skewed toward a target position weight
matrix, mimicking empirically observed sequencing-protocol bias.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		for _, l := range logLevels {
			if logLevel == l {
				level, err := logrus.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				logger.SetLevel(level)
				return nil
			}
		}
		return fmt.Errorf("invalid log level %q (one of %s)", logLevel, strings.Join(logLevels, ", "))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). Any error surfaced by a
// command becomes a single diagnostic on stderr and a non-zero exit.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	logger.SetOutput(os.Stderr)
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		fmt.Sprintf("logging severity (one of %s)", strings.Join(logLevels, ", ")))
}
