package standings

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskBest identifies the run counted as a task's best result on a
// score-based problem.
type TaskBest struct {
	RunID int             `json:"run_id"`
	Score decimal.Decimal `json:"score"`
	// Time is in seconds from contest start.
	Time         int64 `json:"time"`
	EditDistance *int  `json:"edit_distance,omitempty"`
}

// ProblemStatus is the folded state of one team on one problem.
// ICPC and score-based problems fill different halves of the struct,
// Attempted and Pending are shared.
type ProblemStatus struct {
	ProblemID int `json:"problem_id"`

	// Attempted is false when the team has no visible runs here.
	Attempted bool `json:"attempted"`
	// Pending counts visible runs without a final verdict. Frozen
	// boards mask hidden runs into this bucket.
	Pending int `json:"pending"`

	// ICPC accounting. FailedAttempts only counts rejections before
	// the first accepted run, SolvedTime is in whole minutes from
	// contest start.
	Solved         bool  `json:"solved,omitempty"`
	FailedAttempts int   `json:"failed_attempts,omitempty"`
	SolvedTime     int64 `json:"solved_time,omitempty"`

	// Score-based accounting.
	Task1Best decimal.Decimal `json:"task1_best"`
	Task2Best *TaskBest       `json:"task2_best,omitempty"`
	Combined  decimal.Decimal `json:"combined"`
}

type LeaderboardEntry struct {
	Rank int          `json:"rank"`
	Team *Participant `json:"team"`

	TotalScore decimal.Decimal `json:"total_score"`

	// NumSolved and Penalty are only meaningful under the ICPC model.
	NumSolved int `json:"num_solved"`
	Penalty   int `json:"penalty"`

	// LastSubmission is the latest visible run in whole minutes from
	// contest start, over every problem, accepted or not.
	LastSubmission int64 `json:"last_submission"`

	ProblemStatuses map[int]*ProblemStatus `json:"problem_statuses"`
}

type Leaderboard struct {
	ProblemOrder []int          `json:"problem_ordering"`
	ProblemNames map[int]string `json:"problem_names"`

	Entries []*LeaderboardEntry `json:"entries"`

	Model ScoreboardModel `json:"scoreboard_model"`

	// Frozen is set when late runs are being hidden from this view.
	// FreezeTime is then the cutoff in seconds from contest start.
	Frozen     bool   `json:"frozen"`
	FreezeTime *int64 `json:"freeze_time,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
