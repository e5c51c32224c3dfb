package main

import (
	"context"
	"os"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [show]",
	Short: "Play a show in the terminal",
	Long: `Plays the show in real time and prints one line per lifecycle event.
Ctrl+C stops playback; with --session and --redis the position is saved and
the next run resumes from it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := playbackOptions(cmd, args)
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Watch, _ = cmd.Flags().GetBool("watch")
		opts.Hold, _ = cmd.Flags().GetBool("hold")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		sm := runner.NewSignalManager(context.Background())
		defer sm.Stop()
		return cli.Play(sm.Context(), opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	addPlaybackFlags(playCmd)
	playCmd.Flags().Bool("json", false, "Print events as NDJSON")
	playCmd.Flags().BoolP("watch", "w", false, "Reload the show when its files change")
	playCmd.Flags().Bool("hold", false, "Keep running after the timeline completes")
	playCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
