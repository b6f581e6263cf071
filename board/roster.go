package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/aojudge/standings"
)

// CreateContest registers a new contest. Times default to a five hour
// window starting now, so a bare name is enough to get a board up.
func (s *API) CreateContest(ctx context.Context, c *standings.Contest) (int, *StatusError) {
	if c == nil || c.Name == "" {
		return -1, WrapError(ErrMissingRequired, "Contest needs a name")
	}
	if c.StartTime.IsZero() {
		c.StartTime = time.Now().Truncate(time.Minute)
	}
	if c.EndTime.IsZero() {
		c.EndTime = c.StartTime.Add(5 * time.Hour)
	}
	if !c.EndTime.After(c.StartTime) {
		return -1, Statusf(400, "Contest would end before it starts")
	}
	if c.Model == "" {
		c.Model = standings.ModelICPC
	}

	id, err := s.store.CreateContest(ctx, c)
	if err != nil {
		return -1, WrapError(err, "Couldn't create contest")
	}
	slog.InfoContext(ctx, "Created contest", slog.Int("contest_id", id), slog.String("name", c.Name))
	return id, nil
}

// CreateProblem appends a problem column to a contest's board. An
// unset problem type inherits the contest's scoreboard model.
func (s *API) CreateProblem(ctx context.Context, pb *standings.Problem) (int, *StatusError) {
	if pb == nil || pb.Name == "" {
		return -1, WrapError(ErrMissingRequired, "Problem needs a name")
	}
	data, err := s.ContestData(ctx, pb.ContestID)
	if err != nil {
		return -1, err
	}
	if pb.Type == "" {
		pb.Type = standings.ProblemTypeICPC
		if data.Contest.Model == standings.ModelScoreBased {
			pb.Type = standings.ProblemTypeScoreBased
		}
	}
	if pb.Position == 0 {
		pb.Position = len(data.Problems) + 1
	}

	id, err1 := s.store.CreateProblem(ctx, pb)
	if err1 != nil {
		return -1, WrapError(err1, "Couldn't create problem")
	}
	s.invalidateContest(pb.ContestID)
	return id, nil
}

// DeleteProblem removes a problem column and every run judged on it,
// then drops the cached snapshot so the board reflows without it.
func (s *API) DeleteProblem(ctx context.Context, contestID, problemID int) *StatusError {
	pb, err := s.store.Problem(ctx, problemID)
	if err != nil {
		return WrapError(err, "Couldn't fetch problem")
	}
	if pb == nil || pb.ContestID != contestID {
		return WrapError(ErrNotFound, "Problem not found")
	}
	if err := s.store.DeleteProblem(ctx, problemID); err != nil {
		return WrapError(err, "Couldn't delete problem")
	}
	s.invalidateContest(contestID)
	slog.InfoContext(ctx, "Removed contest problem", slog.Int("contest_id", contestID), slog.Int("problem_id", problemID))
	return nil
}

// DeleteContest drops a contest with its problems, roster and runs.
func (s *API) DeleteContest(ctx context.Context, contestID int) *StatusError {
	if err := s.store.DeleteContest(ctx, contestID); err != nil {
		return WrapError(err, "Couldn't delete contest")
	}
	s.invalidateContest(contestID)
	slog.InfoContext(ctx, "Removed contest", slog.Int("contest_id", contestID))
	return nil
}

// RegisterTeam upserts a roster entry. Registering an existing team
// just refreshes its display name and group label.
func (s *API) RegisterTeam(ctx context.Context, p *standings.Participant) *StatusError {
	if p == nil || p.Name == "" || p.TeamID <= 0 {
		return WrapError(ErrMissingRequired, "Team needs an id and a name")
	}
	if _, err := s.Contest(ctx, p.ContestID); err != nil {
		return err
	}
	if err := s.store.AddParticipant(ctx, p); err != nil {
		return WrapError(err, "Couldn't register team")
	}
	s.invalidateContest(p.ContestID)
	return nil
}

// UnregisterTeam strips a team from the roster and clears its runs. A
// kicked team leaves nothing behind on the board or in the run log.
func (s *API) UnregisterTeam(ctx context.Context, contestID, teamID int) *StatusError {
	reg, err := s.store.Participant(ctx, contestID, teamID)
	if err != nil {
		return WrapError(err, "Couldn't fetch registration")
	}
	if reg == nil {
		return WrapError(ErrNotFound, "Team is not registered")
	}
	if err := s.store.DeleteParticipant(ctx, contestID, teamID); err != nil {
		return WrapError(err, "Couldn't unregister team")
	}
	if err := s.store.DeleteTeamRuns(ctx, contestID, teamID); err != nil {
		return WrapError(err, "Couldn't clear the team's runs")
	}
	s.invalidateContest(contestID)
	slog.InfoContext(ctx, "Unregistered team", slog.Int("contest_id", contestID), slog.Int("team_id", teamID))
	return nil
}
