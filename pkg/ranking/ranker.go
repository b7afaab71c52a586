// Package ranking decides what to work on next.
//
// Each pending task gets a composite score built from deadline urgency,
// duration, domain/time-of-day and context-switch components plus any manual
// override. Without a time budget tasks are returned best first; with one, the
// best-scoring subset that fits the budget is chosen exactly.
package ranking

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/csainsbury/kairos/pkg/availability"
	"github.com/csainsbury/kairos/pkg/config"
	"github.com/csainsbury/kairos/pkg/model"
)

// Component weights of the composite score.
const (
	DeadlineWeight = 0.5
	DurationWeight = 0.25
	DomainWeight   = 0.15
	ContextWeight  = 0.1
)

// ScoredTask is a task with the scores computed for one ranking call.
type ScoredTask struct {
	Task      model.Task
	Deadline  float64
	Duration  float64
	Domain    float64
	Context   float64
	Composite float64
}

// PerMinute is the composite score divided by the duration, with durations
// below one minute counted as one.
func (s ScoredTask) PerMinute() float64 {
	return s.Composite / math.Max(1, float64(s.Task.EstimatedMinutes))
}

// Request describes one ranking call. Budget takes precedence over Window;
// with neither, every pending task is ranked.
type Request struct {
	Tasks []model.Task
	// Budget is the available time in minutes.
	Budget *int
	// Current is the task being worked on, for context-switch scoring.
	Current *model.Task
	// Window derives a budget from free calendar time when Budget is nil.
	Window *model.Window
}

// Ranker scores and selects tasks. It holds no per-call state and is safe for
// concurrent use.
type Ranker struct {
	weights   func() map[model.Domain]float64
	resolver  *availability.Resolver
	clock     func() time.Time
	maxBudget int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithClock sets the time source used for deadline and domain scoring.
func WithClock(clock func() time.Time) Option {
	return func(r *Ranker) {
		r.clock = clock
	}
}

// WithWeights sets the domain-weight loader. It is called once per ranking.
func WithWeights(load func() map[model.Domain]float64) Option {
	return func(r *Ranker) {
		r.weights = load
	}
}

// WithResolver sets the resolver used to turn a Window into a budget.
func WithResolver(res *availability.Resolver) Option {
	return func(r *Ranker) {
		r.resolver = res
	}
}

// WithMaxBudget clamps budgets above n minutes to n. Zero disables the clamp.
func WithMaxBudget(n int) Option {
	return func(r *Ranker) {
		r.maxBudget = n
	}
}

// New creates a Ranker. By default weights come from the environment, time
// from time.Now, budgets are clamped to config.DefaultMaxBudget and windows are
// resolved with no calendar (the whole window counts as free).
func New(opts ...Option) *Ranker {
	r := &Ranker{
		weights:   config.DomainWeights,
		clock:     time.Now,
		maxBudget: config.DefaultMaxBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = availability.NewResolver(nil, 0)
	}
	return r
}

// Rank returns the pending tasks in recommended order. Completed tasks are
// never returned. With a budget the result fits within it.
func (r *Ranker) Rank(ctx context.Context, req Request) []model.Task {
	return tasksOf(r.Score(ctx, req))
}

// RecommendNext returns the head of Rank, or false when nothing qualifies.
func (r *Ranker) RecommendNext(ctx context.Context, req Request) (model.Task, bool) {
	ranked := r.Rank(ctx, req)
	if len(ranked) == 0 {
		return model.Task{}, false
	}
	return ranked[0], true
}

// RankByDomain ranks only the tasks in domain.
func (r *Ranker) RankByDomain(ctx context.Context, domain model.Domain, req Request) []model.Task {
	req.Tasks = model.FilterByDomain(req.Tasks, domain)
	return r.Rank(ctx, req)
}

// Score is Rank with the component scores of every returned task.
func (r *Ranker) Score(ctx context.Context, req Request) []ScoredTask {
	pending := make([]model.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		if !t.Completed() {
			pending = append(pending, t)
		}
	}

	budget, limited := r.budget(ctx, req)

	now := r.clock()
	weights := r.weights()
	scored := make([]ScoredTask, len(pending))
	for i, t := range pending {
		scored[i] = scoreTask(t, req.Current, weights, now)
	}

	if !limited {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Composite > scored[j].Composite
		})
		log.Debug().Int("tasks", len(scored)).Msg("ranked tasks without budget")
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PerMinute() > scored[j].PerMinute()
	})
	selected := SelectWithinBudget(scored, budget)
	log.Debug().
		Int("tasks", len(scored)).
		Int("budget", budget).
		Int("selected", len(selected)).
		Msg("ranked tasks within budget")
	return selected
}

// budget resolves the effective budget and whether one applies.
func (r *Ranker) budget(ctx context.Context, req Request) (int, bool) {
	var b int
	switch {
	case req.Budget != nil:
		b = *req.Budget
	case req.Window != nil:
		b = r.resolver.TotalMinutes(ctx, *req.Window)
	default:
		return 0, false
	}
	if r.maxBudget > 0 && b > r.maxBudget {
		log.Warn().Int("budget", b).Int("max", r.maxBudget).Msg("clamping time budget")
		b = r.maxBudget
	}
	return b, true
}

func scoreTask(t model.Task, current *model.Task, weights map[model.Domain]float64, now time.Time) ScoredTask {
	st := ScoredTask{
		Task:     t,
		Deadline: DeadlineScore(t.Deadline, now),
		Duration: DurationScore(t.EstimatedMinutes),
		Domain:   DomainScore(t.Domain, weights, now),
		Context:  ContextSwitchScore(current, t),
	}
	st.Composite = st.Deadline*DeadlineWeight +
		st.Duration*DurationWeight +
		st.Domain*DomainWeight +
		st.Context*ContextWeight +
		t.UrgencyOverride
	return st
}

func tasksOf(scored []ScoredTask) []model.Task {
	tasks := make([]model.Task, len(scored))
	for i, st := range scored {
		tasks[i] = st.Task
	}
	return tasks
}
