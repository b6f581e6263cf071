package standings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RunOutcome is a judged run's terminal state as far as ranking is
// concerned. Graders report finer-grained verdicts, the board only
// distinguishes these three.
type RunOutcome string

const (
	OutcomeAccepted RunOutcome = "accepted"
	OutcomeRejected RunOutcome = "rejected"
	OutcomePending  RunOutcome = "pending"
)

type ProblemType string

const (
	ProblemTypeICPC       ProblemType = "icpc"
	ProblemTypeScoreBased ProblemType = "scorebased"
)

// Task numbers for score-based problems. A score-based problem is made
// of two independently judged tasks whose best results are combined.
const (
	TaskOne = 1
	TaskTwo = 2
)

// Run is a single judged submission, as seen by the ranking engine.
// Values are immutable once ingested: visibility filtering and freeze
// masking always work on copies.
type Run struct {
	ID        int `json:"id"`
	TeamID    int `json:"team_id"`
	ProblemID int `json:"problem_id"`

	// Time is measured in seconds from contest start.
	Time int64 `json:"time"`

	Outcome RunOutcome      `json:"outcome"`
	Score   decimal.Decimal `json:"score"`

	ProblemType ProblemType `json:"problem_type"`

	// TaskType is only set for score-based problems.
	TaskType *int `json:"task_type,omitempty"`
	// EditDistance is only set for score-based task 2 runs.
	EditDistance *int `json:"edit_distance,omitempty"`
}

// Minutes returns the run's submission time in whole minutes from
// contest start. Penalty and tiebreak accounting both use this unit.
func (r *Run) Minutes() int64 {
	return r.Time / 60
}

func (r *Run) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

// Masked returns a display copy with the judged result hidden, the way
// frozen scoreboards show late runs. A masked run is indistinguishable
// from one that was never judged.
func (r *Run) Masked() *Run {
	masked := *r
	masked.Outcome = OutcomePending
	masked.Score = decimal.Zero
	masked.EditDistance = nil
	return &masked
}

// RunFilter is used by storage backends when listing runs.
type RunFilter struct {
	ContestID int `json:"contest_id"`

	TeamID    *int `json:"team_id"`
	ProblemID *int `json:"problem_id"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// OutcomeFromVerdict collapses a grader verdict into a run outcome.
// Unknown verdicts are treated as still pending, never as rejections.
func OutcomeFromVerdict(verdict string) RunOutcome {
	switch verdict {
	case "accepted":
		return OutcomeAccepted
	case "wrong_answer", "time_limit_exceeded", "memory_limit_exceeded",
		"runtime_error", "compile_error", "presentation_error":
		return OutcomeRejected
	default:
		return OutcomePending
	}
}

// Scan implements the sql.Scanner interface
func (e *RunOutcome) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = RunOutcome(s)
	case string:
		*e = RunOutcome(s)
	default:
		return fmt.Errorf("unsupported scan type for RunOutcome: %T", src)
	}
	return nil
}
