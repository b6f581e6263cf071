package standings

import "time"

// ScoreboardModel decides which scoring rules a contest runs under.
type ScoreboardModel string

const (
	// ModelICPC: 100 points per solved problem, time penalty tiebreak.
	ModelICPC ScoreboardModel = "icpc"
	// ModelScoreBased: partial scores, two tasks per problem, no penalty.
	ModelScoreBased ScoreboardModel = "scorebased"
)

type Contest struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// FreezeMinutes is how long before contest end the board freezes.
	// <= 0 => no freeze
	FreezeMinutes int `json:"freeze_minutes"`

	// Frozen is the operator switch. The board only hides late runs
	// while it is set, so results can be published without editing
	// the freeze schedule.
	Frozen bool `json:"frozen"`

	// PenaltyMinutes is added per failed attempt on solved problems
	// under the ICPC model.
	PenaltyMinutes int `json:"penalty_minutes"`

	Model ScoreboardModel `json:"scoreboard_model"`
}

type ContestUpdate struct {
	Name *string `json:"name"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	FreezeMinutes  *int  `json:"freeze_minutes"`
	Frozen         *bool `json:"frozen"`
	PenaltyMinutes *int  `json:"penalty_minutes"`

	Model *ScoreboardModel `json:"scoreboard_model"`
}

func (c *Contest) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

func (c *Contest) DurationSeconds() int64 {
	return int64(c.Duration() / time.Second)
}

// FreezeOffset returns the freeze cutoff in seconds from contest start,
// or nil when no freeze is configured. Misconfigured freeze windows are
// clamped into [0, duration] instead of being rejected: a freeze longer
// than the contest just freezes the whole board.
func (c *Contest) FreezeOffset() *int64 {
	if c.FreezeMinutes <= 0 {
		return nil
	}
	dur := c.DurationSeconds()
	offset := dur - int64(c.FreezeMinutes)*60
	if offset < 0 {
		offset = 0
	}
	if offset > dur {
		offset = dur
	}
	return &offset
}

// Problem is a contest problem as listed on the scoreboard.
type Problem struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`

	ContestID int `json:"contest_id"`
	// Position orders the scoreboard columns and the ceremony reveal.
	Position int `json:"position"`

	Type ProblemType `json:"type"`
}
