package ranking

import (
	"math"
	"time"

	"github.com/csainsbury/kairos/pkg/model"
)

const (
	noDeadlineScore  = 5.0
	pastDueScore     = 10.0
	unknownDomain    = 0.5
	instantTaskScore = 5.0
)

// DeadlineScore rates how pressing a deadline is at now. Higher is more
// urgent. The score never increases as the deadline moves further out; it is
// continuous up to one week and steps down at one week and at thirty days.
func DeadlineScore(deadline *time.Time, now time.Time) float64 {
	if deadline == nil {
		return noDeadlineScore
	}
	if deadline.Before(now) {
		return pastDueScore
	}

	hours := deadline.Sub(now).Hours()
	switch {
	case hours <= 24:
		// 9.0 now, 7.0 at one day.
		return 9.0 - 2.0*(hours/24)
	case hours <= 72:
		// 7.0 at one day, 6.0 at three days.
		return 7.0 - 1.0*((hours-24)/48)
	case hours <= 168:
		// 6.0 at three days, 4.0 at a week.
		return 6.0 - 2.0*((hours-72)/96)
	case hours <= 30*24:
		return math.Max(2.0, 5.0-0.6*math.Log(hours/24))
	default:
		return math.Max(1.0, 3.5-0.3*math.Log(hours/24))
	}
}

// durationBands maps an upper bound in minutes to a score.
var durationBands = []struct {
	max   int
	score float64
}{
	{5, 5.0},
	{15, 4.5},
	{30, 4.0},
	{45, 3.75},
	{60, 3.5},
	{90, 3.25},
	{120, 3.0},
	{180, 2.75},
	{240, 2.5},
	{360, 2.0},
}

// DurationScore rewards short tasks. Non-positive estimates get the top score.
func DurationScore(minutes int) float64 {
	if minutes <= 0 {
		return instantTaskScore
	}
	for _, b := range durationBands {
		if minutes <= b.max {
			return b.score
		}
	}
	last := durationBands[len(durationBands)-1]
	return math.Max(1.0, last.score-0.5*math.Log(float64(minutes)/float64(last.max)))
}

// DomainScore returns the domain's base weight scaled by its time-of-day boost
// at the reference time. Unknown domains score 0.5 with no boost.
func DomainScore(domain model.Domain, weights map[model.Domain]float64, at time.Time) float64 {
	if !domain.Valid() {
		return unknownDomain
	}
	base, ok := weights[domain]
	if !ok {
		base = unknownDomain
	}
	return base * domainBoost(domain, at)
}

func domainBoost(domain model.Domain, at time.Time) float64 {
	hour := at.Hour()
	weekend := at.Weekday() == time.Saturday || at.Weekday() == time.Sunday

	switch domain {
	case model.DomainWork:
		if !weekend && hour >= 9 && hour < 17 {
			return 1.5
		}
	case model.DomainLifeAdmin:
		if weekend || hour >= 17 || hour <= 8 {
			return 1.3
		}
	case model.DomainGeneralLife:
		if weekend || hour >= 18 {
			return 1.2
		}
	}
	return 1.0
}

// ContextSwitchScore scores moving from current to candidate: +1.0 within a
// project, +0.5 within a domain, -0.2 otherwise, 0 with no current task.
func ContextSwitchScore(current *model.Task, candidate model.Task) float64 {
	if current == nil {
		return 0
	}
	if current.ProjectID != "" && current.ProjectID == candidate.ProjectID {
		return 1.0
	}
	if current.Domain.Valid() && current.Domain == candidate.Domain {
		return 0.5
	}
	return -0.2
}
