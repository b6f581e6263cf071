package scoring

import (
	"slices"

	"github.com/aojudge/standings"
)

// Rank sorts entries best-first and assigns shared ranks: teams whose
// comparator keys are all equal share the rank of the first of them,
// the next distinct team takes its 1-based position. Fully tied teams
// keep their input order.
func Rank(entries []*standings.LeaderboardEntry, strat Strategy) {
	slices.SortStableFunc(entries, strat.Compare)
	for i, entry := range entries {
		if i > 0 && strat.Compare(entries[i-1], entry) == 0 {
			entry.Rank = entries[i-1].Rank
			continue
		}
		entry.Rank = i + 1
	}
}
