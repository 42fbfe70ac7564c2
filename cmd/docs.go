package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsDir string

// docsCmd regenerates the Markdown documentation for each command.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation for the piquant commands",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(RootCmd, docsDir)
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVar(&docsDir, "dir", "./docs", "directory to write the Markdown files to")
}
