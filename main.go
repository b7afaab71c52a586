package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/csainsbury/kairos/pkg/config"
)

// Global flags.
var (
	sourceFlag  string
	filesFlag   []string
	verboseFlag bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kairos",
	Short: "Decide what to work on next",
	Long: `kairos ranks pending tasks by deadline urgency, duration, domain and
context, and picks the best set of tasks that fits the free time in your
calendar.

Tasks are read from Taskwarrior, Org-mode files or a YAML task file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verboseFlag)

		loaded, err := config.Load()
		if err != nil {
			log.Warn().Err(err).Msg("could not load config, using defaults")
			loaded = config.Default()
		}
		cfg = loaded
		if sourceFlag != "" {
			cfg.Source = sourceFlag
		}
		if len(filesFlag) > 0 {
			cfg.Files = filesFlag
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "task source: taskwarrior, org or file (overrides config)")
	rootCmd.PersistentFlags().StringSliceVar(&filesFlag, "file", nil, "org files or YAML task file to read")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
