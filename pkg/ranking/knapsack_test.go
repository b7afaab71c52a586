package ranking

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csainsbury/kairos/pkg/model"
)

func item(id string, minutes int, score float64) ScoredTask {
	return ScoredTask{
		Task:      model.Task{ID: id, EstimatedMinutes: minutes},
		Composite: score,
	}
}

func ids(items []ScoredTask) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Task.ID
	}
	return out
}

func totals(items []ScoredTask) (minutes int, score float64) {
	for _, it := range items {
		minutes += weight(it)
		score += it.Composite
	}
	return minutes, score
}

func TestSelectWithinBudgetBasic(t *testing.T) {
	items := []ScoredTask{
		item("a", 30, 8.0),
		item("b", 45, 7.0),
		item("c", 60, 6.0),
	}
	assert.Equal(t, []string{"a", "b"}, ids(SelectWithinBudget(items, 90)))
}

func TestSelectWithinBudgetExactFit(t *testing.T) {
	items := []ScoredTask{item("a", 30, 8.0), item("b", 30, 7.0)}
	assert.Equal(t, []string{"a", "b"}, ids(SelectWithinBudget(items, 60)))
}

func TestSelectWithinBudgetNothingFits(t *testing.T) {
	assert.Empty(t, SelectWithinBudget([]ScoredTask{item("a", 30, 8.0)}, 20))
}

func TestSelectWithinBudgetEmptyInputs(t *testing.T) {
	assert.Empty(t, SelectWithinBudget(nil, 60))
	assert.Empty(t, SelectWithinBudget([]ScoredTask{item("a", 5, 1)}, 0))
	assert.Empty(t, SelectWithinBudget([]ScoredTask{item("a", 5, 1)}, -10))
}

func TestSelectWithinBudgetPrefersValueOverGreedy(t *testing.T) {
	// Greedy by score takes "big" and nothing else fits; two small ones are worth more.
	items := []ScoredTask{
		item("big", 60, 10.0),
		item("small1", 30, 6.0),
		item("small2", 30, 6.0),
	}
	assert.Equal(t, []string{"small1", "small2"}, ids(SelectWithinBudget(items, 60)))
}

func TestSelectWithinBudgetOrdersByScore(t *testing.T) {
	items := []ScoredTask{
		item("low", 10, 1.0),
		item("high", 10, 9.0),
		item("mid", 10, 5.0),
	}
	assert.Equal(t, []string{"high", "mid", "low"}, ids(SelectWithinBudget(items, 30)))
}

func TestSelectWithinBudgetZeroDurationIsFree(t *testing.T) {
	items := []ScoredTask{
		item("instant", 0, 2.0),
		item("negative", -5, 1.0),
		item("real", 20, 3.0),
	}
	got := SelectWithinBudget(items, 20)
	assert.Equal(t, []string{"real", "instant", "negative"}, ids(got))
}

func TestSelectWithinBudgetSkipsNegativeScores(t *testing.T) {
	items := []ScoredTask{item("bad", 5, -1.0), item("good", 5, 1.0)}
	assert.Equal(t, []string{"good"}, ids(SelectWithinBudget(items, 60)))
}

func TestSelectWithinBudgetTiesResolveToEarlierItems(t *testing.T) {
	items := []ScoredTask{
		item("first", 30, 4.0),
		item("second", 30, 4.0),
		item("third", 30, 4.0),
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"first", "second"}, ids(SelectWithinBudget(items, 60)))
	}
}

func bruteForce(items []ScoredTask, budget int) float64 {
	best := 0.0
	for mask := 0; mask < 1<<len(items); mask++ {
		minutes, score := 0, 0.0
		for i := range items {
			if mask&(1<<i) != 0 {
				minutes += weight(items[i])
				score += items[i].Composite
			}
		}
		if minutes <= budget && score > best {
			best = score
		}
	}
	return best
}

func TestSelectWithinBudgetMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(12)
		items := make([]ScoredTask, n)
		for i := range items {
			items[i] = item(fmt.Sprintf("t%d", i), 1+rng.Intn(90), rng.Float64()*10)
		}
		budget := rng.Intn(240)

		got := SelectWithinBudget(items, budget)
		minutes, score := totals(got)

		require.LessOrEqual(t, minutes, budget, "round %d", round)
		require.InDelta(t, bruteForce(items, budget), score, 1e-9, "round %d", round)
	}
}
