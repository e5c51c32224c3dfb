package main

import (
	"fmt"
	"os"

	"github.com/aretw0/marquee/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Marquee plays cinematic timelines of scenes and transitions",
	Long: `Marquee sequences scenes on a timeline, blends them with transitions
and reports every lifecycle event. A show is a YAML scene graph or a
directory of scene and event documents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for persistent playback sessions")
	rootCmd.PersistentFlags().String("session-db", "", "SQLite database for playback sessions")
	rootCmd.PersistentFlags().String("session-dir", "", "Directory for playback sessions without --redis or --session-db (default .marquee/sessions)")
}

// showPath takes the show from the first argument, the current directory otherwise.
func showPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func baseOptions(cmd *cobra.Command, args []string) cli.Options {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")
	redisURL, _ := cmd.Flags().GetString("redis")
	sessionDB, _ := cmd.Flags().GetString("session-db")
	sessionDir, _ := cmd.Flags().GetString("session-dir")
	return cli.Options{
		Path:        showPath(args),
		RedisURL:    redisURL,
		SessionDB:   sessionDB,
		SessionDir:  sessionDir,
		SessionKeys: os.Getenv(cli.SessionKeysEnv),
		LogLevel:    logLevel,
		LogJSON:     logJSON,
	}
}

// addPlaybackFlags registers the flags shared by play, serve and mcp.
func addPlaybackFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("event", "e", "", "Event to play (default: the first one)")
	cmd.Flags().StringP("session", "s", "", "Session id to persist and resume")
	cmd.Flags().Int("fps", 60, "Ticks per second")
}

func playbackOptions(cmd *cobra.Command, args []string) cli.Options {
	opts := baseOptions(cmd, args)
	opts.EventID, _ = cmd.Flags().GetString("event")
	opts.SessionID, _ = cmd.Flags().GetString("session")
	opts.FPS, _ = cmd.Flags().GetInt("fps")
	return opts
}
