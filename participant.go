package standings

import "time"

// Participant is a roster entry: a team registered for a contest.
// Teams without any runs still appear on the scoreboard.
type Participant struct {
	TeamID    int       `json:"team_id"`
	ContestID int       `json:"contest_id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `json:"name"`
	// Group is a display label (institution, division), never used
	// for ranking.
	Group string `json:"group,omitempty"`
}
