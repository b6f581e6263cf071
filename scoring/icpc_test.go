package scoring

import (
	"testing"

	"github.com/aojudge/standings"
	"github.com/shopspring/decimal"
)

func icpcRun(id, team, problem int, timeSec int64, outcome standings.RunOutcome) *standings.Run {
	return &standings.Run{
		ID:          id,
		TeamID:      team,
		ProblemID:   problem,
		Time:        timeSec,
		Outcome:     outcome,
		ProblemType: standings.ProblemTypeICPC,
	}
}

type icpcFoldTest struct {
	Runs []*standings.Run

	Solved         bool
	FailedAttempts int
	Pending        int
	SolvedTime     int64
	Attempted      bool
}

var icpcFoldExamples = map[string]icpcFoldTest{
	"no_runs": {},
	"wrong_then_accept": {
		Runs: []*standings.Run{
			icpcRun(1, 1, 1, 300, standings.OutcomeRejected),
			icpcRun(2, 1, 1, 900, standings.OutcomeAccepted),
		},
		Solved: true, FailedAttempts: 1, SolvedTime: 15, Attempted: true,
	},
	"accept_locks_cell": {
		Runs: []*standings.Run{
			icpcRun(1, 1, 1, 600, standings.OutcomeAccepted),
			icpcRun(2, 1, 1, 700, standings.OutcomeRejected),
			icpcRun(3, 1, 1, 800, standings.OutcomeAccepted),
		},
		Solved: true, FailedAttempts: 0, SolvedTime: 10, Attempted: true,
	},
	"pending_is_not_an_attempt": {
		Runs: []*standings.Run{
			icpcRun(1, 1, 1, 100, standings.OutcomePending),
			icpcRun(2, 1, 1, 200, standings.OutcomeRejected),
			icpcRun(3, 1, 1, 300, standings.OutcomeAccepted),
		},
		Solved: true, FailedAttempts: 1, Pending: 1, SolvedTime: 5, Attempted: true,
	},
	"unsorted_input_is_reordered": {
		Runs: []*standings.Run{
			icpcRun(2, 1, 1, 900, standings.OutcomeRejected),
			icpcRun(1, 1, 1, 600, standings.OutcomeAccepted),
		},
		Solved: true, FailedAttempts: 0, SolvedTime: 10, Attempted: true,
	},
	"rejections_only": {
		Runs: []*standings.Run{
			icpcRun(1, 1, 1, 60, standings.OutcomeRejected),
			icpcRun(2, 1, 1, 120, standings.OutcomeRejected),
			icpcRun(3, 1, 1, 180, standings.OutcomeRejected),
		},
		Solved: false, FailedAttempts: 3, Attempted: true,
	},
}

func TestICPCFold(t *testing.T) {
	for k, v := range icpcFoldExamples {
		v := v
		t.Run(k, func(t *testing.T) {
			t.Parallel()
			st := ICPC{}.FoldProblem(1, v.Runs)
			if st.Solved != v.Solved {
				t.Fatalf("Expected solved=%v, got %v", v.Solved, st.Solved)
			}
			if st.FailedAttempts != v.FailedAttempts {
				t.Fatalf("Expected %d failed attempts, got %d", v.FailedAttempts, st.FailedAttempts)
			}
			if st.Pending != v.Pending {
				t.Fatalf("Expected %d pending runs, got %d", v.Pending, st.Pending)
			}
			if st.SolvedTime != v.SolvedTime {
				t.Fatalf("Expected solved time %d, got %d", v.SolvedTime, st.SolvedTime)
			}
			if st.Attempted != v.Attempted {
				t.Fatalf("Expected attempted=%v, got %v", v.Attempted, st.Attempted)
			}
		})
	}
}

func TestICPCFoldDeterministic(t *testing.T) {
	runs := []*standings.Run{
		icpcRun(1, 1, 1, 300, standings.OutcomeRejected),
		icpcRun(2, 1, 1, 900, standings.OutcomeAccepted),
		icpcRun(3, 1, 1, 1200, standings.OutcomeRejected),
	}
	first := ICPC{}.FoldProblem(1, runs)
	second := ICPC{}.FoldProblem(1, runs)
	if first.Solved != second.Solved || first.FailedAttempts != second.FailedAttempts ||
		first.SolvedTime != second.SolvedTime || first.Pending != second.Pending {
		t.Fatalf("Fold is not deterministic: %#v vs %#v", first, second)
	}
}

func TestICPCAggregate(t *testing.T) {
	c := &standings.Contest{PenaltyMinutes: 20, Model: standings.ModelICPC}
	team := &standings.Participant{TeamID: 1, Name: "gophers"}

	runs := []*standings.Run{
		icpcRun(1, 1, 1, 300, standings.OutcomeRejected),
		icpcRun(2, 1, 1, 900, standings.OutcomeAccepted),
		icpcRun(3, 1, 2, 2400, standings.OutcomeRejected),
	}
	statuses := map[int]*standings.ProblemStatus{
		1: ICPC{}.FoldProblem(1, runs[:2]),
		2: ICPC{}.FoldProblem(2, runs[2:]),
	}

	entry := ICPC{}.AggregateTeam(team, statuses, runs, c)
	if !entry.TotalScore.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Expected total score 100, got %s", entry.TotalScore)
	}
	// 15 minutes to solve plus one failed attempt at 20 penalty minutes.
	if entry.Penalty != 35 {
		t.Fatalf("Expected penalty 35, got %d", entry.Penalty)
	}
	if entry.NumSolved != 1 {
		t.Fatalf("Expected 1 solved, got %d", entry.NumSolved)
	}
	if entry.LastSubmission != 40 {
		t.Fatalf("Expected last submission at minute 40, got %d", entry.LastSubmission)
	}
}

func TestICPCCompare(t *testing.T) {
	mkEntry := func(score int64, penalty int, last int64) *standings.LeaderboardEntry {
		return &standings.LeaderboardEntry{
			TotalScore:     decimal.NewFromInt(score),
			Penalty:        penalty,
			LastSubmission: last,
		}
	}
	type compareTest struct {
		A, B *standings.LeaderboardEntry
		Want int
	}
	examples := map[string]compareTest{
		"higher_score_first":      {A: mkEntry(200, 500, 100), B: mkEntry(100, 10, 10), Want: -1},
		"lower_penalty_first":     {A: mkEntry(100, 30, 100), B: mkEntry(100, 40, 10), Want: -1},
		"earlier_last_sub_breaks": {A: mkEntry(100, 30, 80), B: mkEntry(100, 30, 90), Want: -1},
		"full_tie":                {A: mkEntry(100, 30, 80), B: mkEntry(100, 30, 80), Want: 0},
	}
	for k, v := range examples {
		v := v
		t.Run(k, func(t *testing.T) {
			t.Parallel()
			got := ICPC{}.Compare(v.A, v.B)
			if (got < 0) != (v.Want < 0) || (got == 0) != (v.Want == 0) {
				t.Fatalf("Expected comparison %d, got %d", v.Want, got)
			}
		})
	}
}
