package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/availability"
	"github.com/csainsbury/kairos/pkg/config"
	"github.com/csainsbury/kairos/pkg/google"
	"github.com/csainsbury/kairos/pkg/model"
	"github.com/csainsbury/kairos/pkg/orgmode"
	"github.com/csainsbury/kairos/pkg/ranking"
	"github.com/csainsbury/kairos/pkg/taskfile"
	"github.com/csainsbury/kairos/pkg/taskwarrior"
)

// loadTasks reads tasks from the configured source.
func loadTasks(ctx context.Context, c *config.Config) ([]model.Task, error) {
	switch c.Source {
	case "taskwarrior", "tw":
		twTasks, err := taskwarrior.NewClient().GetTasks(ctx, taskwarrior.DefaultFilter)
		if err != nil {
			return nil, err
		}
		return taskwarrior.ToModels(twTasks), nil
	case "org", "orgmode":
		if len(c.Files) == 0 {
			return nil, fmt.Errorf("org source needs at least one --file")
		}
		return orgmode.ParseFiles(expandHome(c.Files))
	case "file", "yaml":
		if len(c.Files) != 1 {
			return nil, fmt.Errorf("file source needs exactly one --file, got %d", len(c.Files))
		}
		return taskfile.Load(expandHome(c.Files)[0])
	}
	return nil, fmt.Errorf("unknown task source %q", c.Source)
}

func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "~" || strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
		out[i] = p
	}
	return out
}

// newResolver connects to Google Calendar. Without a usable calendar the
// resolver has no source and every window counts as free.
func newResolver(ctx context.Context, c *config.Config) *availability.Resolver {
	client, err := google.NewClient(ctx, c.Calendar)
	if err != nil {
		log.Warn().Err(err).Str("calendar", c.Calendar).Msg("calendar unavailable, treating all time as free")
		return availability.NewResolver(nil, c.Timeout())
	}
	log.Debug().Str("calendar_id", client.CalendarID()).Msg("using calendar")
	return availability.NewResolver(client, c.Timeout())
}

func newRanker(c *config.Config, resolver *availability.Resolver) *ranking.Ranker {
	return ranking.New(
		ranking.WithResolver(resolver),
		ranking.WithMaxBudget(c.MaxBudgetMinutes),
	)
}

// parseClock reads an RFC3339 timestamp, or HH:MM meaning that time today in
// now's location.
func parseClock(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	hm, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want RFC3339 or HH:MM", s)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, now.Location()), nil
}

// parseWindow builds the availability window from --from and --to. A missing
// --from means now; a missing --to means the end of the --from day. Both empty
// means no window.
func parseWindow(from, to string, now time.Time) (*model.Window, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	start := now
	if from != "" {
		t, err := parseClock(from, now)
		if err != nil {
			return nil, err
		}
		start = t
	}
	y, m, d := start.Date()
	end := time.Date(y, m, d, 23, 59, 0, 0, start.Location())
	if to != "" {
		t, err := parseClock(to, now)
		if err != nil {
			return nil, err
		}
		end = t
	}
	if !end.After(start) {
		return nil, fmt.Errorf("window end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return &model.Window{Start: start, End: end}, nil
}

func findTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
