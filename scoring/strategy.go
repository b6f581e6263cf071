// Package scoring turns a snapshot of judged runs into ranked
// standings. Everything in here is a pure computation: callers fetch
// the contest, roster and runs, the package folds them into a
// leaderboard. No I/O, no shared state.
package scoring

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/aojudge/standings"
)

// Strategy bundles the model-specific parts of the pipeline: folding
// one team's runs on one problem, aggregating a team's cells into an
// entry, and ordering entries.
type Strategy interface {
	// FoldProblem reduces one team's runs on one problem. Runs may
	// arrive unsorted, the fold orders them by submission time first.
	FoldProblem(problemID int, runs []*standings.Run) *standings.ProblemStatus

	// AggregateTeam combines a team's problem cells into a
	// leaderboard entry. visibleRuns are the team's unmasked runs
	// and only feed the last-submission tiebreak.
	AggregateTeam(team *standings.Participant, statuses map[int]*standings.ProblemStatus, visibleRuns []*standings.Run, c *standings.Contest) *standings.LeaderboardEntry

	// Compare orders two entries, best first.
	Compare(a, b *standings.LeaderboardEntry) int
}

// ForModel selects the scoring rules for a contest. Unknown models
// fall back to ICPC rules rather than failing the whole board.
func ForModel(model standings.ScoreboardModel) Strategy {
	switch model {
	case standings.ModelScoreBased:
		return ScoreBased{}
	case standings.ModelICPC:
		return ICPC{}
	default:
		slog.Warn("Unknown scoreboard model, assuming ICPC", slog.String("model", string(model)))
		return ICPC{}
	}
}

func strategyForProblem(pb *standings.Problem, def Strategy) Strategy {
	switch pb.Type {
	case standings.ProblemTypeICPC:
		return ICPC{}
	case standings.ProblemTypeScoreBased:
		return ScoreBased{}
	default:
		return def
	}
}

// Normalize prepares a raw run list for folding: duplicate IDs
// collapse to the last occurrence and runs with an unknown problem
// type are dropped. Both anomalies are logged, neither is fatal.
func Normalize(runs []*standings.Run) []*standings.Run {
	out := make([]*standings.Run, 0, len(runs))
	seen := make(map[int]int)
	for _, r := range runs {
		switch r.ProblemType {
		case standings.ProblemTypeICPC, standings.ProblemTypeScoreBased:
		default:
			slog.Warn("Dropping run with unknown problem type",
				slog.Int("run_id", r.ID), slog.String("problem_type", string(r.ProblemType)))
			continue
		}
		if idx, ok := seen[r.ID]; ok {
			slog.Warn("Duplicate run event, keeping latest", slog.Int("run_id", r.ID))
			out[idx] = r
			continue
		}
		seen[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

func sortRuns(runs []*standings.Run) []*standings.Run {
	sorted := slices.Clone(runs)
	slices.SortFunc(sorted, func(a, b *standings.Run) int {
		if a.Time != b.Time {
			return cmp.Compare(a.Time, b.Time)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}

func lastSubmissionMinutes(runs []*standings.Run) int64 {
	var last int64
	for _, r := range runs {
		if m := r.Minutes(); m > last {
			last = m
		}
	}
	return last
}
