package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/csainsbury/kairos/pkg/auth"
	"github.com/csainsbury/kairos/pkg/config"
	"github.com/csainsbury/kairos/pkg/digest"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Google Calendar",
	Long: `Run the OAuth flow for read-only access to Google Calendar.

Place the credentials.json downloaded from the Google Cloud Console in
~/.config/kairos first. Any stored token is replaced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Authenticate(cmd.Context(), auth.CalendarScopes); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		log.Info().Str("token_file", auth.TokenFile).Msg("authentication successful")
		return nil
	},
}

var setCalendarCmd = &cobra.Command{
	Use:   "set-calendar <name>",
	Short: "Set the Google Calendar used for free time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(func(c *config.Config) error {
			c.Calendar = args[0]
			return nil
		}, fmt.Sprintf("Default calendar set to: %s", args[0]), cmd)
	},
}

var setScheduleCmd = &cobra.Command{
	Use:   "set-schedule <cron>",
	Short: `Set the digest schedule, e.g. "30 7 * * 1-5"`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := args[0]
		next, err := digest.NextRunTime(expr, time.Now())
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", expr, err)
		}
		return updateConfig(func(c *config.Config) error {
			c.DigestSchedule = expr
			return nil
		}, fmt.Sprintf("Digest schedule set to %q, next run %s", expr, next.Format(time.RFC1123)), cmd)
	},
}

func init() {
	rootCmd.AddCommand(authCmd, setCalendarCmd, setScheduleCmd)
}

// updateConfig applies change to the config file as stored on disk, so
// command-line overrides are not persisted.
func updateConfig(change func(*config.Config) error, done string, cmd *cobra.Command) error {
	stored, err := config.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("existing config unreadable, starting from defaults")
		}
		stored = config.Default()
	}
	if err := change(stored); err != nil {
		return err
	}
	if err := config.Save(stored); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
