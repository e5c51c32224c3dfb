package main

import (
	"fmt"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [show]",
	Short: "Check the scene graph for consistency",
	Long: `Loads the show and reports unknown scenes, wrong transition counts,
non-positive durations and malformed animations.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := cli.Validate(showPath(args))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scene graph is valid: %d scenes, %d events ✅\n", len(g.Scenes), len(g.Events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
