package api

import (
	"net/http"
	"strconv"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/internal/util"
	"github.com/go-chi/chi/v5"
)

func (s *API) listRuns(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		TeamID    *int `json:"team_id"`
		ProblemID *int `json:"problem_id"`

		Limit  int `json:"limit"`
		Offset int `json:"offset"`

		Privileged bool `json:"privileged"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}

	runs, err := s.base.Runs(r.Context(), util.Contest(r).ID, standings.RunFilter{
		TeamID:    args.TeamID,
		ProblemID: args.ProblemID,
		Limit:     args.Limit,
		Offset:    args.Offset,
	}, args.Privileged)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, runs)
}

func (s *API) deleteRun(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.Atoi(chi.URLParam(r, "runID"))
	if err != nil {
		errorData(w, "invalid run ID", 400)
		return
	}
	if err := s.base.DeleteRun(r.Context(), runID); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Run deleted")
}
