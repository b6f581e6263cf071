package scoring

import (
	"cmp"

	"github.com/aojudge/standings"
	"github.com/shopspring/decimal"
)

const solvedProblemPoints = 100

// ICPC implements classic solve-count scoring: every solved problem is
// worth the same, ties break on accumulated time penalty.
type ICPC struct{}

func (ICPC) FoldProblem(problemID int, runs []*standings.Run) *standings.ProblemStatus {
	st := &standings.ProblemStatus{ProblemID: problemID}
	for _, r := range sortRuns(runs) {
		st.Attempted = true
		// The first accepted run locks the cell, later runs are
		// not judged against it.
		if st.Solved {
			break
		}
		switch r.Outcome {
		case standings.OutcomeAccepted:
			st.Solved = true
			st.SolvedTime = r.Minutes()
		case standings.OutcomeRejected:
			st.FailedAttempts++
		case standings.OutcomePending:
			st.Pending++
		}
	}
	return st
}

func (ICPC) AggregateTeam(team *standings.Participant, statuses map[int]*standings.ProblemStatus, visibleRuns []*standings.Run, c *standings.Contest) *standings.LeaderboardEntry {
	entry := &standings.LeaderboardEntry{
		Team:            team,
		ProblemStatuses: statuses,
	}
	for _, st := range statuses {
		if !st.Solved {
			continue
		}
		entry.NumSolved++
		entry.Penalty += int(st.SolvedTime) + st.FailedAttempts*c.PenaltyMinutes
	}
	entry.TotalScore = decimal.NewFromInt(int64(solvedProblemPoints * entry.NumSolved))
	entry.LastSubmission = lastSubmissionMinutes(visibleRuns)
	return entry
}

func (ICPC) Compare(a, b *standings.LeaderboardEntry) int {
	if c := b.TotalScore.Cmp(a.TotalScore); c != 0 {
		return c
	}
	if a.Penalty != b.Penalty {
		return cmp.Compare(a.Penalty, b.Penalty)
	}
	return cmp.Compare(a.LastSubmission, b.LastSubmission)
}
