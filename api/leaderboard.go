package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/internal/config"
	"github.com/aojudge/standings/internal/util"
	"github.com/aojudge/standings/scoring"
)

var csvExportEnabled = config.GenFlag[bool]("feature.leaderboard.csv_export", true, "CSV leaderboard export")

func (s *API) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	ld, err := s.leaderboard(w, r)
	if err != nil {
		statusError(w, err)
		return
	}
	if ld == nil {
		return
	}
	returnData(w, ld)
}

func (s *API) serveLeaderboardCSV(w http.ResponseWriter, r *http.Request) {
	if !csvExportEnabled.Value() {
		statusError(w, standings.WrapError(standings.ErrFeatureDisabled, "CSV export was disabled by the administrator"))
		return
	}
	ld, err := s.leaderboard(w, r)
	if err != nil {
		statusError(w, err)
		return
	}
	if ld == nil {
		return
	}

	var buf bytes.Buffer
	wr := csv.NewWriter(&buf)

	header := []string{"team"}
	for _, pb := range ld.ProblemOrder {
		name, ok := ld.ProblemNames[pb]
		if !ok {
			slog.WarnContext(r.Context(), "Leaderboard lists a problem it has no name for", slog.Int("problem_id", pb))
			errorData(w, "Invalid internal data", 500)
			return
		}
		header = append(header, name)
	}
	if ld.Model == standings.ModelICPC {
		header = append(header, "num_solved", "penalty")
	} else {
		header = append(header, "total")
	}
	if err := wr.Write(header); err != nil {
		errorData(w, "Couldn't write CSV", 500)
		return
	}

	for _, entry := range ld.Entries {
		line := []string{entry.Team.Name}
		for _, pb := range ld.ProblemOrder {
			line = append(line, csvCell(ld.Model, entry.ProblemStatuses[pb]))
		}
		if ld.Model == standings.ModelICPC {
			line = append(line, strconv.Itoa(entry.NumSolved), strconv.Itoa(entry.Penalty))
		} else {
			line = append(line, entry.TotalScore.String())
		}
		if err := wr.Write(line); err != nil {
			errorData(w, "Couldn't write CSV", 500)
			return
		}
	}

	wr.Flush()
	if err := wr.Error(); err != nil {
		errorData(w, "Couldn't write CSV", 500)
		return
	}

	filename := fmt.Sprintf("%s-leaderboard.csv", standings.MakeSlug(util.Contest(r).Name))
	w.Header().Add("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	http.ServeContent(w, r, filename, time.Now(), bytes.NewReader(buf.Bytes()))
}

// leaderboard parses the common viewer options and computes the
// board. A nil, nil return means the response was already written.
func (s *API) leaderboard(w http.ResponseWriter, r *http.Request) (*standings.Leaderboard, *standings.StatusError) {
	r.ParseForm()
	var args struct {
		// Privileged viewers see through the freeze.
		Privileged bool `json:"privileged"`
		// Frozen renders the audience view even for privileged
		// viewers.
		Frozen bool `json:"frozen"`
	}
	if err := decoder.Decode(&args, r.Form); err != nil {
		errorData(w, "Can't decode parameters", 400)
		return nil, nil
	}

	return s.base.Leaderboard(r.Context(), util.Contest(r).ID, scoring.Options{
		Privileged: args.Privileged,
		ShowFrozen: args.Frozen,
	})
}

// csvCell renders one problem cell the way printed ICPC standings do:
// untouched "-", pending "?", failed "-2", solved "+2 / 01:23".
// Score-based cells are just the combined score.
func csvCell(model standings.ScoreboardModel, st *standings.ProblemStatus) string {
	if st == nil || !st.Attempted {
		return "-"
	}
	if model != standings.ModelICPC {
		return st.Combined.String()
	}
	if st.Solved {
		col := "+"
		if st.FailedAttempts > 0 {
			col += strconv.Itoa(st.FailedAttempts)
		}
		// SolvedTime is in minutes, rendered as HH:MM.
		col += fmt.Sprintf(" / %02d:%02d", st.SolvedTime/60, st.SolvedTime%60)
		return col
	}
	if st.Pending > 0 {
		return "?"
	}
	return strconv.Itoa(-st.FailedAttempts)
}
