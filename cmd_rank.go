package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/csainsbury/kairos/pkg/availability"
	"github.com/csainsbury/kairos/pkg/model"
	"github.com/csainsbury/kairos/pkg/ranking"
)

var rankOpts struct {
	budget  int
	from    string
	to      string
	current string
	domain  string
	tag     string
	explain bool
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank pending tasks",
	Long: `Rank pending tasks best first.

With --budget (minutes) or a --from/--to window, only the best set of tasks
that fits the available time is shown. A window is checked against your
calendar; if the calendar cannot be read the whole window counts as free.

Examples:
  # Everything, best first
  kairos rank

  # What fits into the next hour and a half
  kairos rank --budget 90

  # What fits into this afternoon's free time
  kairos rank --from 13:00 --to 17:30 --explain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req, resolver, err := buildRequest(ctx, cmd)
		if err != nil {
			return err
		}

		tasks := req.Tasks
		if rankOpts.tag != "" {
			tasks = model.FilterByTag(tasks, rankOpts.tag)
		}
		if rankOpts.domain != "" {
			d, err := model.ParseDomain(rankOpts.domain)
			if err != nil {
				return err
			}
			tasks = model.FilterByDomain(tasks, d)
		}
		req.Tasks = tasks

		scored := newRanker(cfg, resolver).Score(ctx, req)
		renderRanking(cmd.OutOrStdout(), scored, rankOpts.explain)
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the single best task to do now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		req, resolver, err := buildRequest(ctx, cmd)
		if err != nil {
			return err
		}

		ranker := newRanker(cfg, resolver)
		var task model.Task
		var ok bool
		if rankOpts.domain != "" {
			d, err := model.ParseDomain(rankOpts.domain)
			if err != nil {
				return err
			}
			if ranked := ranker.RankByDomain(ctx, d, req); len(ranked) > 0 {
				task, ok = ranked[0], true
			}
		} else {
			task, ok = ranker.RecommendNext(ctx, req)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), describe(task))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{rankCmd, nextCmd} {
		c.Flags().IntVar(&rankOpts.budget, "budget", 0, "available time in minutes")
		c.Flags().StringVar(&rankOpts.from, "from", "", "window start (RFC3339 or HH:MM today)")
		c.Flags().StringVar(&rankOpts.to, "to", "", "window end (RFC3339 or HH:MM today)")
		c.Flags().StringVar(&rankOpts.current, "current", "", "ID of the task you are working on (default: the started task)")
		c.Flags().StringVar(&rankOpts.domain, "domain", "", "only consider tasks in this domain")
	}
	rankCmd.Flags().StringVar(&rankOpts.tag, "tag", "", "only rank tasks with this tag")
	rankCmd.Flags().BoolVar(&rankOpts.explain, "explain", false, "show the score components")

	rootCmd.AddCommand(rankCmd, nextCmd)
}

// buildRequest loads tasks and turns the shared flags into a ranking request.
// The calendar is only contacted when a window is needed.
func buildRequest(ctx context.Context, cmd *cobra.Command) (ranking.Request, *availability.Resolver, error) {
	tasks, err := loadTasks(ctx, cfg)
	if err != nil {
		return ranking.Request{}, nil, fmt.Errorf("loading tasks: %w", err)
	}
	req := ranking.Request{Tasks: tasks, Current: currentTask(tasks, rankOpts.current)}

	if cmd.Flags().Changed("budget") {
		b := rankOpts.budget
		req.Budget = &b
		return req, nil, nil
	}

	window, err := parseWindow(rankOpts.from, rankOpts.to, time.Now())
	if err != nil {
		return ranking.Request{}, nil, err
	}
	if window == nil {
		return req, nil, nil
	}
	req.Window = window
	return req, newResolver(ctx, cfg), nil
}

// currentTask resolves --current against the loaded tasks, falling back to
// the task recorded by `kairos start`.
func currentTask(tasks []model.Task, id string) *model.Task {
	if id != "" {
		if t, ok := findTask(tasks, id); ok {
			return &t
		}
		log.Warn().Str("id", id).Msg("current task not found, ignoring")
		return nil
	}

	store, err := openCurrentStore()
	if err != nil {
		log.Warn().Err(err).Msg("could not read current task")
		return nil
	}
	entry, ok := store.Get()
	if !ok {
		return nil
	}
	t := entry.Task()
	return &t
}

func describe(t model.Task) string {
	s := fmt.Sprintf("%s  %s", t.ID, t.Description)
	if t.Domain != "" {
		s += fmt.Sprintf(" [%s]", t.Domain)
	}
	s += fmt.Sprintf(" %dm", t.EstimatedMinutes)
	if t.Deadline != nil {
		s += fmt.Sprintf(", due %s", t.Deadline.Local().Format("Mon 02 Jan 15:04"))
	}
	return s
}

func renderRanking(w io.Writer, scored []ranking.ScoredTask, explain bool) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "Nothing to do.")
		return
	}
	minutes := 0
	for i, st := range scored {
		minutes += st.Task.EstimatedMinutes
		fmt.Fprintf(w, "%2d. %-6.2f %s\n", i+1, st.Composite, describe(st.Task))
		if explain {
			fmt.Fprintf(w, "           deadline %.2f  duration %.2f  domain %.2f  context %+.2f  override %+.2f\n",
				st.Deadline, st.Duration, st.Domain, st.Context, st.Task.UrgencyOverride)
		}
	}
	fmt.Fprintf(w, "%d tasks, %d minutes\n", len(scored), minutes)
}
