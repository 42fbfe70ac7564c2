package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/COMBINE-lab/piquant/internal/pwm"
)

var pwmPath string

// pwmCmd validates a PWM file and prints its dimensions and weights,
// useful for sanity-checking a matrix before a long bias run.
var pwmCmd = &cobra.Command{
	Use:   "pwm",
	Short: "Validate a position weight matrix file and print its contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		matrix, err := pwm.Load(pwmPath)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d positions\n", pwmPath, matrix.Width())
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "pos\tA\tC\tG\tT")
		for i := 0; i < matrix.Width(); i++ {
			row := matrix.Row(i)
			fmt.Fprintf(w, "%d\t%g\t%g\t%g\t%g\n", i, row[0], row[1], row[2], row[3])
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(pwmCmd)

	pwmCmd.Flags().StringVar(&pwmPath, "pwm", "", "path to the PWM file to validate")
	pwmCmd.MarkFlagRequired("pwm")
}
