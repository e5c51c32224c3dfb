package main

import (
	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [show]",
	Short: "Describe the events and scenes of a show",
	Long: `Prints the timeline of every event. --format mermaid outputs a Gantt
chart; markdown outputs the raw report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return cli.Inspect(showPath(args), format, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", cli.FormatPretty, "Output format: pretty, markdown or mermaid")
}
