package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/internal/util"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func (s *API) getContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.base.Contests(r.Context())
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, contests)
}

func (s *API) getContest(w http.ResponseWriter, r *http.Request) {
	returnData(w, util.Contest(r))
}

func (s *API) createContest(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		Name  string `json:"name"`
		Model string `json:"scoreboard_model"`

		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`

		FreezeMinutes  int  `json:"freeze_minutes"`
		PenaltyMinutes *int `json:"penalty_minutes"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}
	if err := validation.ValidateStruct(&args,
		validation.Field(&args.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&args.Model, validation.In(string(standings.ModelICPC), string(standings.ModelScoreBased))),
	); err != nil {
		errorData(w, err, 400)
		return
	}

	startTime, ok := parseTimestamp(w, args.StartTime)
	if !ok {
		return
	}
	endTime, ok := parseTimestamp(w, args.EndTime)
	if !ok {
		return
	}

	contest := &standings.Contest{
		Name:          args.Name,
		Model:         standings.ScoreboardModel(args.Model),
		FreezeMinutes: args.FreezeMinutes,

		// ICPC's usual 20 minutes unless the operator says otherwise.
		PenaltyMinutes: 20,
	}
	if startTime != nil {
		contest.StartTime = *startTime
	}
	if endTime != nil {
		contest.EndTime = *endTime
	}
	if args.PenaltyMinutes != nil {
		contest.PenaltyMinutes = *args.PenaltyMinutes
	}

	id, err := s.base.CreateContest(r.Context(), contest)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

func (s *API) updateContest(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		Name *string `json:"name"`

		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`

		FreezeMinutes  *int    `json:"freeze_minutes"`
		PenaltyMinutes *int    `json:"penalty_minutes"`
		Model          *string `json:"scoreboard_model"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}

	startTime, ok := parseTimestamp(w, args.StartTime)
	if !ok {
		return
	}
	endTime, ok := parseTimestamp(w, args.EndTime)
	if !ok {
		return
	}

	var model *standings.ScoreboardModel
	if args.Model != nil {
		m := standings.ScoreboardModel(*args.Model)
		if m != standings.ModelICPC && m != standings.ModelScoreBased {
			errorData(w, "Invalid scoreboard model", 400)
			return
		}
		model = &m
	}

	if err := s.base.UpdateContest(r.Context(), util.Contest(r).ID, standings.ContestUpdate{
		Name:      args.Name,
		StartTime: startTime,
		EndTime:   endTime,

		FreezeMinutes:  args.FreezeMinutes,
		PenaltyMinutes: args.PenaltyMinutes,
		Model:          model,
	}); err != nil {
		statusError(w, err)
		return
	}

	returnData(w, "Contest updated")
}

func (s *API) deleteContest(w http.ResponseWriter, r *http.Request) {
	if err := s.base.DeleteContest(r.Context(), util.Contest(r).ID); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Contest deleted")
}

func (s *API) setFreeze(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		Frozen bool `json:"frozen"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}

	if err := s.base.SetFrozen(r.Context(), util.Contest(r).ID, args.Frozen); err != nil {
		statusError(w, err)
		return
	}
	if args.Frozen {
		returnData(w, "Scoreboard frozen")
		return
	}
	returnData(w, "Scoreboard unfrozen")
}

func (s *API) getProblems(w http.ResponseWriter, r *http.Request) {
	data, err := s.base.ContestData(r.Context(), util.Contest(r).ID)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, data.Problems)
}

func (s *API) createProblem(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
		Type     string `json:"problem_type"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}
	if err := validation.ValidateStruct(&args,
		validation.Field(&args.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&args.Type, validation.In(string(standings.ProblemTypeICPC), string(standings.ProblemTypeScoreBased))),
	); err != nil {
		errorData(w, err, 400)
		return
	}

	id, err := s.base.CreateProblem(r.Context(), &standings.Problem{
		Name:      args.Name,
		ContestID: util.Contest(r).ID,
		Position:  args.Position,
		Type:      standings.ProblemType(args.Type),
	})
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

func (s *API) deleteProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := strconv.Atoi(chi.URLParam(r, "problemID"))
	if err != nil {
		errorData(w, "invalid problem ID", 400)
		return
	}
	if err := s.base.DeleteProblem(r.Context(), util.Contest(r).ID, problemID); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Problem deleted")
}

func (s *API) getParticipants(w http.ResponseWriter, r *http.Request) {
	data, err := s.base.ContestData(r.Context(), util.Contest(r).ID)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, data.Participants)
}

func (s *API) registerTeam(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		TeamID int    `json:"team_id"`
		Name   string `json:"name"`
		Group  string `json:"group"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}
	if err := validation.ValidateStruct(&args,
		validation.Field(&args.TeamID, validation.Required, validation.Min(1)),
		validation.Field(&args.Name, validation.Required, validation.Length(1, 128)),
	); err != nil {
		errorData(w, err, 400)
		return
	}

	if err := s.base.RegisterTeam(r.Context(), &standings.Participant{
		ContestID: util.Contest(r).ID,
		TeamID:    args.TeamID,
		Name:      args.Name,
		Group:     args.Group,
	}); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Team registered")
}

func (s *API) unregisterTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil {
		errorData(w, "invalid team ID", 400)
		return
	}
	if err := s.base.UnregisterTeam(r.Context(), util.Contest(r).ID, teamID); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Unregistered team")
}

func parseTimestamp(w http.ResponseWriter, val *string) (*time.Time, bool) {
	if val == nil {
		return nil, true
	}
	t, err := time.Parse(time.RFC1123Z, *val)
	if err != nil {
		errorData(w, "Invalid timestamp", 400)
		return nil, false
	}
	return &t, true
}
