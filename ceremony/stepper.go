// Package ceremony implements the award ceremony reveal protocol: the
// frozen tail of the scoreboard is opened team by team from the bottom
// of the ranking, one problem per step, with standings recomputed
// after every reveal. The state machine is independent of any
// rendering layer: callers drive it through Advance and draw whatever
// the returned board says.
package ceremony

import (
	"slices"
	"sync"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/scoring"
	"github.com/google/uuid"
)

type State string

const (
	// StateIdle: no team under the spotlight. Advancing picks the
	// lowest-ranked team that has not been finalized yet.
	StateIdle State = "idle"
	// StateFocused: one team is being revealed. Advancing opens its
	// next hidden problem, or finalizes the team when nothing is
	// left to show.
	StateFocused State = "focused"
)

// Result describes what a single Advance accomplished.
type Result struct {
	State State `json:"state"`

	FocusedTeamID     *int `json:"focused_team_id,omitempty"`
	RevealedProblemID *int `json:"revealed_problem_id,omitempty"`

	// FinalizedTeamID and FinalizedRank are set on the step that
	// settled a team. The rank is snapshotted at that moment so
	// presenters can keep announced placements on screen even
	// though the live board keeps recomputing.
	FinalizedTeamID *int `json:"finalized_team_id,omitempty"`
	FinalizedRank   int  `json:"finalized_rank,omitempty"`

	Board *standings.Leaderboard `json:"board"`

	// Done is set once every rostered team has been finalized.
	Done bool `json:"done"`
}

// Stepper drives one ceremony session for one contest. All state is
// confined behind its mutex: concurrent Advance calls from multiple
// announcer connections are serialized, never interleaved.
type Stepper struct {
	mu sync.Mutex

	id string

	contest  *standings.Contest
	problems []*standings.Problem
	teams    []*standings.Participant

	visible []*standings.Run
	hidden  []*standings.Run

	state   State
	focused int

	finalized map[int]int
}

// NewStepper snapshots the contest for a ceremony session. The freeze
// split happens once, here: everything past the cutoff starts hidden
// and is only released through Advance.
func NewStepper(c *standings.Contest, problems []*standings.Problem, teams []*standings.Participant, runs []*standings.Run) (*Stepper, error) {
	if c == nil {
		return nil, standings.ErrMissingRequired
	}
	runs = scoring.Normalize(runs)
	visible, hidden := scoring.SplitRuns(runs, c.FreezeOffset(), false, c.Frozen)

	ordered := slices.Clone(problems)
	slices.SortFunc(ordered, func(a, b *standings.Problem) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return a.ID - b.ID
	})

	return &Stepper{
		id:        uuid.NewString(),
		contest:   c,
		problems:  ordered,
		teams:     slices.Clone(teams),
		visible:   visible,
		hidden:    hidden,
		state:     StateIdle,
		finalized: make(map[int]int),
	}, nil
}

func (s *Stepper) ID() string {
	return s.id
}

func (s *Stepper) ContestID() int {
	return s.contest.ID
}

// Advance performs one ceremony step. It never fails: advancing a
// finished (or empty) ceremony is a no-op that reports Done.
func (s *Stepper) Advance() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFocused {
		return s.advanceFocused()
	}
	return s.advanceIdle()
}

// Snapshot reports the current ceremony view without stepping it.
func (s *Stepper) Snapshot() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{
		State: s.state,
		Board: s.board(),
		Done:  len(s.finalized) == len(s.teams),
	}
	if s.state == StateFocused {
		team := s.focused
		res.FocusedTeamID = &team
	}
	return res
}

// FinalizedRanks returns each finalized team's rank as snapshotted at
// its finalize step.
func (s *Stepper) FinalizedRanks() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]int, len(s.finalized))
	for team, rank := range s.finalized {
		out[team] = rank
	}
	return out
}

func (s *Stepper) advanceIdle() *Result {
	ld := s.board()
	target := s.lowestUnfinalized(ld)
	if target == nil {
		return &Result{State: StateIdle, Board: ld, Done: true}
	}

	teamID := target.Team.TeamID
	s.state = StateFocused
	s.focused = teamID
	res := &Result{State: StateFocused, FocusedTeamID: &teamID, Board: ld}

	// A team with nothing hidden finalizes in the same step, so the
	// announcer never has to advance through an empty spotlight.
	if !s.hasHidden(teamID) {
		s.finalized[teamID] = target.Rank
		s.state = StateIdle
		res.State = StateIdle
		res.FinalizedTeamID = &teamID
		res.FinalizedRank = target.Rank
		res.Done = len(s.finalized) == len(s.teams)
	}
	return res
}

func (s *Stepper) advanceFocused() *Result {
	teamID := s.focused
	if problemID, ok := s.revealNext(teamID); ok {
		ld := s.board()
		return &Result{
			State:             StateFocused,
			FocusedTeamID:     &teamID,
			RevealedProblemID: &problemID,
			Board:             ld,
		}
	}

	ld := s.board()
	rank := rankOf(ld, teamID)
	s.finalized[teamID] = rank
	s.state = StateIdle
	return &Result{
		State:           StateIdle,
		FinalizedTeamID: &teamID,
		FinalizedRank:   rank,
		Board:           ld,
		Done:            len(s.finalized) == len(s.teams),
	}
}

// board recomputes live standings: visible runs count, still-hidden
// runs show up as pending cells.
func (s *Stepper) board() *standings.Leaderboard {
	ld := scoring.Board(s.contest, s.problems, s.teams, s.visible, scoring.MaskPending(s.hidden))
	if len(s.hidden) > 0 {
		ld.Frozen = true
		ld.FreezeTime = s.contest.FreezeOffset()
	}
	return ld
}

// lowestUnfinalized scans the ranking bottom-up for the next team to
// put under the spotlight.
func (s *Stepper) lowestUnfinalized(ld *standings.Leaderboard) *standings.LeaderboardEntry {
	for i := len(ld.Entries) - 1; i >= 0; i-- {
		if _, done := s.finalized[ld.Entries[i].Team.TeamID]; !done {
			return ld.Entries[i]
		}
	}
	return nil
}

func (s *Stepper) hasHidden(teamID int) bool {
	for _, r := range s.hidden {
		if r.TeamID == teamID {
			return true
		}
	}
	return false
}

// revealNext opens the focused team's next hidden problem, following
// the scoreboard's problem order. Every hidden run of that problem
// moves to the visible set at once: partial reveals could show a
// misleading intermediate score on dual-task problems.
func (s *Stepper) revealNext(teamID int) (int, bool) {
	for _, pb := range s.problems {
		found := false
		for _, r := range s.hidden {
			if r.TeamID == teamID && r.ProblemID == pb.ID {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		remaining := make([]*standings.Run, 0, len(s.hidden))
		for _, r := range s.hidden {
			if r.TeamID == teamID && r.ProblemID == pb.ID {
				s.visible = append(s.visible, r)
			} else {
				remaining = append(remaining, r)
			}
		}
		s.hidden = remaining
		return pb.ID, true
	}
	return 0, false
}

func rankOf(ld *standings.Leaderboard, teamID int) int {
	for _, entry := range ld.Entries {
		if entry.Team.TeamID == teamID {
			return entry.Rank
		}
	}
	return 0
}
