package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/COMBINE-lab/piquant/config"
	"github.com/COMBINE-lab/piquant/internal/bias"
)

// biasCmd represents the bias command
var biasCmd = &cobra.Command{
	Use:   "bias",
	Short: "Select reads whose 5' composition matches a position weight matrix",
	Long: `Select a subset of sequenced reads whose 5' nucleotide composition is
skewed toward a target profile defined by a position weight matrix (PWM).

"piquant bias" streams a FASTA/FASTQ reads file (single or paired-end) in a
single pass, scores each read's leading bases against the PWM, and keeps a
weighted random sample of the requested size: reads that score higher are
more likely to be selected, not deterministically selected by rank. Mate
pairs are scored on mate 1 and always kept or dropped together.

Input format is detected from record structure and mirrored on output.
Output goes to <prefix>.<ext> for single-end input, or <prefix>.1.<ext> and
<prefix>.2.<ext> for paired-end input. Pass a fixed --seed to make a run
fully reproducible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bias.Run(config.New(), logger)
	},
}

func init() {
	RootCmd.AddCommand(biasCmd)

	biasCmd.Flags().IntP("num-reads", "n", 0, "number of reads to output")
	biasCmd.Flags().String("pwm", "", "path to a PWM file with positional base weights")
	biasCmd.Flags().StringP("reads", "1", "", "path to a FASTA/FASTQ file of single, interleaved paired, or mate 1 reads")
	biasCmd.Flags().StringP("mates", "2", "", "path to the mate 2 FASTA/FASTQ file (two-file paired-end mode)")
	biasCmd.Flags().String("out-prefix", config.DefaultOutPrefix, "prefix for the output file name(s)")
	biasCmd.Flags().Bool("paired-end", false, "treat the reads file as paired-end (interleaved when --mates is absent)")
	biasCmd.Flags().Int64("seed", -1, "random seed for reproducible selection (negative for time-derived)")
	biasCmd.Flags().Bool("gzip", false, "gzip the output file(s)")

	biasCmd.MarkFlagRequired("num-reads")
	biasCmd.MarkFlagRequired("pwm")
	biasCmd.MarkFlagRequired("reads")

	// Bind the parameters to viper
	viper.BindPFlag("num-reads", biasCmd.Flags().Lookup("num-reads"))
	viper.BindPFlag("pwm", biasCmd.Flags().Lookup("pwm"))
	viper.BindPFlag("reads", biasCmd.Flags().Lookup("reads"))
	viper.BindPFlag("mates", biasCmd.Flags().Lookup("mates"))
	viper.BindPFlag("out-prefix", biasCmd.Flags().Lookup("out-prefix"))
	viper.BindPFlag("paired-end", biasCmd.Flags().Lookup("paired-end"))
	viper.BindPFlag("seed", biasCmd.Flags().Lookup("seed"))
	viper.BindPFlag("gzip", biasCmd.Flags().Lookup("gzip"))
}
