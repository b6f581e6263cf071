package scoring

import (
	"cmp"
	"slices"
	"time"

	"github.com/aojudge/standings"
)

type Options struct {
	// Privileged viewers bypass the freeze and see true outcomes.
	Privileged bool
	// ShowFrozen lets a privileged viewer render the audience board
	// instead, to check what everyone else is seeing.
	ShowFrozen bool
}

// Compute derives the full scoreboard from an immutable snapshot of a
// contest. Deterministic for a given input, safe to run concurrently
// for different snapshots. Degenerate data (duplicate run events,
// unknown problem types, misconfigured freeze windows) degrades with a
// warning, only a missing contest is an error.
func Compute(c *standings.Contest, problems []*standings.Problem, participants []*standings.Participant, runs []*standings.Run, opts Options) (*standings.Leaderboard, error) {
	if c == nil {
		return nil, standings.ErrMissingRequired
	}

	runs = Normalize(runs)

	privileged := opts.Privileged && !opts.ShowFrozen
	cutoff := c.FreezeOffset()
	visible, hidden := SplitRuns(runs, cutoff, privileged, c.Frozen)

	ld := Board(c, problems, participants, visible, MaskPending(hidden))
	if c.Frozen && cutoff != nil && !privileged {
		ld.Frozen = true
		ld.FreezeTime = cutoff
	}
	return ld, nil
}

// Board folds an already-filtered run set into standings. visible
// runs feed scores and tiebreaks, masked runs only materialize
// pending cells. Callers that do their own freeze bookkeeping (the
// ceremony does) use this directly, everyone else goes through
// Compute.
func Board(c *standings.Contest, problems []*standings.Problem, participants []*standings.Participant, visible, masked []*standings.Run) *standings.Leaderboard {
	display := visible
	if len(masked) > 0 {
		display = append(slices.Clone(visible), masked...)
	}

	visibleByTeam := make(map[int][]*standings.Run)
	for _, r := range visible {
		visibleByTeam[r.TeamID] = append(visibleByTeam[r.TeamID], r)
	}
	displayByCell := make(map[int]map[int][]*standings.Run)
	for _, r := range display {
		if displayByCell[r.TeamID] == nil {
			displayByCell[r.TeamID] = make(map[int][]*standings.Run)
		}
		displayByCell[r.TeamID][r.ProblemID] = append(displayByCell[r.TeamID][r.ProblemID], r)
	}

	ordered := slices.Clone(problems)
	slices.SortFunc(ordered, func(a, b *standings.Problem) int {
		if a.Position != b.Position {
			return cmp.Compare(a.Position, b.Position)
		}
		return cmp.Compare(a.ID, b.ID)
	})

	boardStrat := ForModel(c.Model)
	entries := make([]*standings.LeaderboardEntry, 0, len(participants))
	for _, team := range participants {
		statuses := make(map[int]*standings.ProblemStatus, len(ordered))
		for _, pb := range ordered {
			strat := strategyForProblem(pb, boardStrat)
			statuses[pb.ID] = strat.FoldProblem(pb.ID, displayByCell[team.TeamID][pb.ID])
		}
		entries = append(entries, boardStrat.AggregateTeam(team, statuses, visibleByTeam[team.TeamID], c))
	}
	Rank(entries, boardStrat)

	ld := &standings.Leaderboard{
		ProblemOrder: make([]int, 0, len(ordered)),
		ProblemNames: make(map[int]string, len(ordered)),
		Entries:      entries,
		Model:        c.Model,
		GeneratedAt:  time.Now(),
	}
	for _, pb := range ordered {
		ld.ProblemOrder = append(ld.ProblemOrder, pb.ID)
		ld.ProblemNames[pb.ID] = pb.Name
	}
	return ld
}
