package main

import (
	"context"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [show]",
	Short: "Play a show behind an HTTP control API",
	Long: `Plays the show and exposes /state, /play, /pause, /resume, /stop,
/seek, /graph, /metrics and a websocket event stream on /events.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		opts := playbackOptions(cmd, args)
		if opts.LogLevel == "" {
			opts.LogLevel = "info"
		}

		sm := runner.NewSignalManager(context.Background())
		defer sm.Stop()
		return cli.Serve(sm.Context(), opts, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addPlaybackFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
