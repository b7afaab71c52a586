package ranking

import "sort"

// SelectWithinBudget picks the subset of items with the highest total score
// whose durations sum to at most budget minutes. It is an exact 0/1 knapsack
// over a (len(items)+1) x (budget+1) table. The result is ordered by score,
// highest first, with ties kept in input order.
//
// Items with non-positive durations weigh nothing. An item is only taken when
// it strictly improves the total, so equal-valued alternatives resolve to the
// earlier items in the input.
func SelectWithinBudget(items []ScoredTask, budget int) []ScoredTask {
	if budget <= 0 || len(items) == 0 {
		return nil
	}

	n := len(items)
	best := make([][]float64, n+1)
	take := make([][]bool, n+1)
	for i := range best {
		best[i] = make([]float64, budget+1)
		take[i] = make([]bool, budget+1)
	}

	for i := 1; i <= n; i++ {
		w := weight(items[i-1])
		v := items[i-1].Composite
		for c := 0; c <= budget; c++ {
			best[i][c] = best[i-1][c]
			if w <= c {
				if with := best[i-1][c-w] + v; with > best[i][c] {
					best[i][c] = with
					take[i][c] = true
				}
			}
		}
	}

	// Walk back from the full budget to recover the chosen items.
	var picked []int
	c := budget
	for i := n; i > 0; i-- {
		if take[i][c] {
			picked = append(picked, i-1)
			c -= weight(items[i-1])
		}
	}
	sort.Ints(picked)

	selected := make([]ScoredTask, len(picked))
	for k, idx := range picked {
		selected[k] = items[idx]
	}
	sort.SliceStable(selected, func(a, b int) bool {
		return selected[a].Composite > selected[b].Composite
	})
	return selected
}

func weight(st ScoredTask) int {
	if st.Task.EstimatedMinutes <= 0 {
		return 0
	}
	return st.Task.EstimatedMinutes
}
