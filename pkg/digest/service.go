// Package digest writes a short "what to do today" summary on a cron schedule.
package digest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/availability"
	"github.com/csainsbury/kairos/pkg/model"
	"github.com/csainsbury/kairos/pkg/ranking"
)

// DefaultTop is how many tasks a digest lists.
const DefaultTop = 3

// Loader fetches the current task list.
type Loader func(ctx context.Context) ([]model.Task, error)

// Digest is one generated summary.
type Digest struct {
	Generated   time.Time
	Window      model.Window
	FreeMinutes int
	Tasks       []ranking.ScoredTask
}

type Service struct {
	ranker   *ranking.Ranker
	resolver *availability.Resolver
	load     Loader
	out      io.Writer
	expr     string
	top      int
	clock    func() time.Time
	cron     *cron.Cron
	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Service.
type Option func(*Service)

// WithTop sets how many tasks each digest lists.
func WithTop(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.top = n
		}
	}
}

// WithClock sets the time source for the digest window.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a digest service firing on the standard five-field cron
// expression expr. Digests are written to out.
func NewService(ranker *ranking.Ranker, resolver *availability.Resolver, load Loader, out io.Writer, expr string, opts ...Option) (*Service, error) {
	if err := ValidateCronExpression(expr); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", expr, err)
	}
	s := &Service{
		ranker:   ranker,
		resolver: resolver,
		load:     load,
		out:      out,
		expr:     expr,
		top:      DefaultTop,
		clock:    time.Now,
		cron:     cron.New(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start runs the schedule until ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	id, err := s.cron.AddFunc(s.expr, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("failed to produce digest")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", s.expr).Time("next_run", s.cron.Entry(id).Next).Msg("digest service started")

	select {
	case <-ctx.Done():
	case <-s.stop:
	}
	<-s.cron.Stop().Done()
	log.Info().Msg("digest service stopped")
	return nil
}

// Stop ends a running Start. Calling it more than once is safe.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// RunOnce builds a digest for the rest of today, writes it and returns it.
func (s *Service) RunOnce(ctx context.Context) (Digest, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return Digest{}, fmt.Errorf("loading tasks: %w", err)
	}

	now := s.clock()
	window := model.Window{Start: now, End: endOfDay(now)}
	free := s.resolver.TotalMinutes(ctx, window)

	scored := s.ranker.Score(ctx, ranking.Request{Tasks: tasks, Budget: &free})
	if len(scored) > s.top {
		scored = scored[:s.top]
	}

	d := Digest{Generated: now, Window: window, FreeMinutes: free, Tasks: scored}
	if _, err := io.WriteString(s.out, Format(d)); err != nil {
		return d, fmt.Errorf("writing digest: %w", err)
	}
	log.Info().
		Int("free_minutes", free).
		Int("tasks", len(scored)).
		Time("generated", now).
		Msg("digest produced")
	return d, nil
}

// Format renders a digest as plain text.
func Format(d Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Digest for %s: %d free minutes until %s\n",
		d.Generated.Format("Mon 02 Jan 15:04"), d.FreeMinutes, d.Window.End.Format("15:04"))
	if len(d.Tasks) == 0 {
		b.WriteString("  Nothing fits today.\n")
		return b.String()
	}
	for i, st := range d.Tasks {
		fmt.Fprintf(&b, "  %d. %s", i+1, st.Task.Description)
		if st.Task.Domain != "" {
			fmt.Fprintf(&b, " [%s]", st.Task.Domain)
		}
		fmt.Fprintf(&b, " %dm", st.Task.EstimatedMinutes)
		if st.Task.Deadline != nil {
			fmt.Fprintf(&b, ", due %s", st.Task.Deadline.Format("Mon 02 Jan 15:04"))
		}
		fmt.Fprintf(&b, " (score %.2f)\n", st.Composite)
	}
	return b.String()
}

// endOfDay is the last minute of t's day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}

// ValidateCronExpression validates a cron expression
func ValidateCronExpression(expr string) error {
	_, err := cron.ParseStandard(expr)
	return err
}

// NextRunTime calculates the next run time for a cron expression
func NextRunTime(expr string, from time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}
