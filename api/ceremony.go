package api

import (
	"net/http"

	"github.com/aojudge/standings/ceremony"
	"github.com/aojudge/standings/internal/util"
)

func (s *API) startCeremony(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var args struct {
		ContestID int `json:"contest_id"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, err, 500)
		return
	}
	if args.ContestID <= 0 {
		errorData(w, "Invalid contest ID", 400)
		return
	}

	stepper, err := s.base.StartCeremony(r.Context(), args.ContestID)
	if err != nil {
		statusError(w, err)
		return
	}

	returnData(w, struct {
		SessionID string           `json:"session_id"`
		State     *ceremony.Result `json:"state"`
	}{stepper.ID(), stepper.Snapshot()})
}

func (s *API) ceremonyState(w http.ResponseWriter, r *http.Request) {
	stepper := util.Ceremony(r)
	result, err := s.base.CeremonySnapshot(stepper.ID())
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, struct {
		ContestID int              `json:"contest_id"`
		State     *ceremony.Result `json:"state"`

		// AnnouncedRanks are placements as they were read out, which
		// can drift from the live board's recomputed ranks.
		AnnouncedRanks map[int]int `json:"announced_ranks"`
	}{stepper.ContestID(), result, stepper.FinalizedRanks()})
}

func (s *API) advanceCeremony(w http.ResponseWriter, r *http.Request) {
	result, err := s.base.AdvanceCeremony(util.Ceremony(r).ID())
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, result)
}

func (s *API) stopCeremony(w http.ResponseWriter, r *http.Request) {
	if err := s.base.StopCeremony(r.Context(), util.Ceremony(r).ID()); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Ceremony stopped")
}
