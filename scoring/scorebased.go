package scoring

import (
	"cmp"

	"github.com/aojudge/standings"
)

// ScoreBased implements the dual-task accumulation model: a problem's
// value is the best accepted task-1 score plus the best accepted
// task-2 score, where "best" for task 2 prefers higher score, then
// lower edit distance, then earlier submission.
type ScoreBased struct{}

func (ScoreBased) FoldProblem(problemID int, runs []*standings.Run) *standings.ProblemStatus {
	st := &standings.ProblemStatus{ProblemID: problemID}
	for _, r := range sortRuns(runs) {
		st.Attempted = true
		if r.Outcome == standings.OutcomePending {
			st.Pending++
			continue
		}
		if !r.Accepted() {
			continue
		}
		if r.TaskType == nil {
			continue
		}
		switch *r.TaskType {
		case standings.TaskOne:
			if r.Score.GreaterThan(st.Task1Best) {
				st.Task1Best = r.Score
			}
		case standings.TaskTwo:
			if betterTask2(r, st.Task2Best) {
				st.Task2Best = &standings.TaskBest{
					RunID:        r.ID,
					Score:        r.Score,
					Time:         r.Time,
					EditDistance: r.EditDistance,
				}
			}
		}
	}
	st.Combined = st.Task1Best
	if st.Task2Best != nil {
		st.Combined = st.Combined.Add(st.Task2Best.Score)
	}
	return st
}

func (ScoreBased) AggregateTeam(team *standings.Participant, statuses map[int]*standings.ProblemStatus, visibleRuns []*standings.Run, c *standings.Contest) *standings.LeaderboardEntry {
	entry := &standings.LeaderboardEntry{
		Team:            team,
		ProblemStatuses: statuses,
	}
	for _, st := range statuses {
		entry.TotalScore = entry.TotalScore.Add(st.Combined)
	}
	entry.LastSubmission = lastSubmissionMinutes(visibleRuns)
	return entry
}

func (ScoreBased) Compare(a, b *standings.LeaderboardEntry) int {
	if c := b.TotalScore.Cmp(a.TotalScore); c != 0 {
		return c
	}
	return cmp.Compare(a.LastSubmission, b.LastSubmission)
}

func betterTask2(r *standings.Run, cur *standings.TaskBest) bool {
	if cur == nil {
		return true
	}
	if c := r.Score.Cmp(cur.Score); c != 0 {
		return c > 0
	}
	if c := compareEditDistance(r.EditDistance, cur.EditDistance); c != 0 {
		return c < 0
	}
	return r.Time < cur.Time
}

// compareEditDistance orders lower distances first. A run without a
// recorded distance ranks after any measured one.
func compareEditDistance(a, b *int) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}
	return cmp.Compare(*a, *b)
}
