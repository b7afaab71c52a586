package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/csainsbury/kairos/pkg/digest"
	"github.com/csainsbury/kairos/pkg/model"
)

var digestOpts struct {
	once bool
	top  int
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print the top tasks for the rest of today on a schedule",
	Long: `Print a short digest of the best tasks that fit the free time left today.

By default the digest runs on the digest_schedule cron expression from the
config file (standard five fields, "0 8 * * *" unless changed) until
interrupted. With --once a single digest is printed and the command exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		resolver := newResolver(ctx, cfg)
		load := func(ctx context.Context) ([]model.Task, error) {
			return loadTasks(ctx, cfg)
		}

		svc, err := digest.NewService(newRanker(cfg, resolver), resolver, load, cmd.OutOrStdout(),
			cfg.DigestSchedule, digest.WithTop(digestOpts.top))
		if err != nil {
			return err
		}

		if digestOpts.once {
			_, err := svc.RunOnce(ctx)
			return err
		}

		return svc.Start(ctx)
	},
}

func init() {
	digestCmd.Flags().BoolVar(&digestOpts.once, "once", false, "print one digest and exit")
	digestCmd.Flags().IntVar(&digestOpts.top, "top", digest.DefaultTop, "number of tasks to list")
	rootCmd.AddCommand(digestCmd)
}
