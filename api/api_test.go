package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/board"
	"github.com/aojudge/standings/ceremony"
	"github.com/aojudge/standings/internal/config"
)

type apiStore struct {
	mu           sync.Mutex
	contests     map[int]*standings.Contest
	problems     map[int][]*standings.Problem
	participants map[int][]*standings.Participant
	runs         map[int][]*standings.Run
}

func (m *apiStore) Contest(ctx context.Context, id int) (*standings.Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contests[id], nil
}

func (m *apiStore) Contests(ctx context.Context) ([]*standings.Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*standings.Contest
	for _, c := range m.contests {
		out = append(out, c)
	}
	return out, nil
}

func (m *apiStore) CreateContest(ctx context.Context, c *standings.Contest) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := len(m.contests) + 1
	c.ID = id
	m.contests[id] = c
	return id, nil
}

func (m *apiStore) UpdateContest(ctx context.Context, id int, upd standings.ContestUpdate) error {
	if upd == (standings.ContestUpdate{}) {
		return standings.ErrNoUpdates
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contests[id]
	if !ok {
		return standings.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Frozen != nil {
		c.Frozen = *upd.Frozen
	}
	if upd.FreezeMinutes != nil {
		c.FreezeMinutes = *upd.FreezeMinutes
	}
	if upd.PenaltyMinutes != nil {
		c.PenaltyMinutes = *upd.PenaltyMinutes
	}
	return nil
}

func (m *apiStore) DeleteContest(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contests, id)
	delete(m.problems, id)
	delete(m.participants, id)
	delete(m.runs, id)
	return nil
}

func (m *apiStore) Problem(ctx context.Context, id int) (*standings.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pbs := range m.problems {
		for _, pb := range pbs {
			if pb.ID == id {
				return pb, nil
			}
		}
	}
	return nil, nil
}

func (m *apiStore) Problems(ctx context.Context, contestID int) ([]*standings.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.problems[contestID], nil
}

func (m *apiStore) CreateProblem(ctx context.Context, pb *standings.Problem) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := 100 + len(m.problems[pb.ContestID])
	pb.ID = id
	m.problems[pb.ContestID] = append(m.problems[pb.ContestID], pb)
	return id, nil
}

func (m *apiStore) DeleteProblem(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for contestID, pbs := range m.problems {
		for i, pb := range pbs {
			if pb.ID == id {
				m.problems[contestID] = append(pbs[:i:i], pbs[i+1:]...)
				var kept []*standings.Run
				for _, r := range m.runs[contestID] {
					if r.ProblemID != id {
						kept = append(kept, r)
					}
				}
				m.runs[contestID] = kept
				return nil
			}
		}
	}
	return nil
}

func (m *apiStore) Participant(ctx context.Context, contestID, teamID int) (*standings.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants[contestID] {
		if p.TeamID == teamID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *apiStore) Participants(ctx context.Context, contestID int) ([]*standings.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.participants[contestID], nil
}

func (m *apiStore) AddParticipant(ctx context.Context, p *standings.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.participants[p.ContestID] {
		if existing.TeamID == p.TeamID {
			m.participants[p.ContestID][i] = p
			return nil
		}
	}
	m.participants[p.ContestID] = append(m.participants[p.ContestID], p)
	return nil
}

func (m *apiStore) DeleteParticipant(ctx context.Context, contestID, teamID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.participants[contestID] {
		if p.TeamID == teamID {
			m.participants[contestID] = append(m.participants[contestID][:i:i], m.participants[contestID][i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *apiStore) Run(ctx context.Context, id int) (*standings.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, runs := range m.runs {
		for _, r := range runs {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return nil, nil
}

func (m *apiStore) Runs(ctx context.Context, filter standings.RunFilter) ([]*standings.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*standings.Run
	for _, r := range m.runs[filter.ContestID] {
		if filter.TeamID != nil && r.TeamID != *filter.TeamID {
			continue
		}
		if filter.ProblemID != nil && r.ProblemID != *filter.ProblemID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *apiStore) RunCount(ctx context.Context, filter standings.RunFilter) (int, error) {
	runs, err := m.Runs(ctx, filter)
	return len(runs), err
}

func (m *apiStore) SaveRun(ctx context.Context, contestID int, run *standings.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[contestID] = append(m.runs[contestID], run)
	return nil
}

func (m *apiStore) DeleteRun(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for contestID, runs := range m.runs {
		for i, r := range runs {
			if r.ID == id {
				m.runs[contestID] = append(runs[:i:i], runs[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (m *apiStore) DeleteTeamRuns(ctx context.Context, contestID, teamID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*standings.Run
	for _, r := range m.runs[contestID] {
		if r.TeamID != teamID {
			kept = append(kept, r)
		}
	}
	m.runs[contestID] = kept
	return nil
}

// testHandler builds the full router over a frozen two-team contest:
// Red solved A before the freeze, Blue solved it inside the frozen
// hour.
func testHandler(t *testing.T) http.Handler {
	t.Helper()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &apiStore{
		contests: map[int]*standings.Contest{
			1: {
				ID:             1,
				Name:           "Spring Finals",
				StartTime:      start,
				EndTime:        start.Add(5 * time.Hour),
				FreezeMinutes:  60,
				Frozen:         true,
				PenaltyMinutes: 20,
				Model:          standings.ModelICPC,
			},
		},
		problems: map[int][]*standings.Problem{
			1: {
				{ID: 1, Name: "A", ContestID: 1, Position: 1, Type: standings.ProblemTypeICPC},
				{ID: 2, Name: "B", ContestID: 1, Position: 2, Type: standings.ProblemTypeICPC},
			},
		},
		participants: map[int][]*standings.Participant{
			1: {
				{TeamID: 1, ContestID: 1, Name: "Red", Group: "Div 1"},
				{TeamID: 2, ContestID: 1, Name: "Blue", Group: "Div 2"},
			},
		},
		runs: map[int][]*standings.Run{
			1: {
				{ID: 1, TeamID: 1, ProblemID: 1, Time: 600, Outcome: standings.OutcomeAccepted, ProblemType: standings.ProblemTypeICPC},
				{ID: 2, TeamID: 2, ProblemID: 1, Time: 14500, Outcome: standings.OutcomeAccepted, ProblemType: standings.ProblemTypeICPC},
			},
		},
	}
	base, err := board.New(store)
	if err != nil {
		t.Fatalf("Couldn't build service: %#v", err)
	}
	return New(base).Handler()
}

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func doPostForm(t *testing.T, h http.Handler, target string, vals url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func doDelete(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("DELETE", target, nil))
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var body envelope[T]
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Couldn't decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestLeaderboardEndpoint(t *testing.T) {
	h := testHandler(t)

	w := doGet(t, h, "/contests/1/leaderboard")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody[*standings.Leaderboard](t, w)
	if body.Status != "success" {
		t.Fatalf("Expected success envelope, got %q", body.Status)
	}
	ld := body.Data
	if !ld.Frozen {
		t.Fatal("Audience board should be frozen")
	}
	if len(ld.Entries) != 2 || ld.Entries[0].Team.TeamID != 1 {
		t.Fatalf("Expected Red on top of 2 entries, got %#v", ld.Entries)
	}
	if st := ld.Entries[1].ProblemStatuses[1]; st == nil || st.Solved || st.Pending != 1 {
		t.Fatalf("Blue's frozen run should render as pending, got %#v", st)
	}

	w = doGet(t, h, "/contests/1/leaderboard?privileged=true")
	priv := decodeBody[*standings.Leaderboard](t, w)
	if priv.Data.Frozen {
		t.Fatal("Privileged board should not be frozen")
	}
	if st := priv.Data.Entries[1].ProblemStatuses[1]; st == nil || !st.Solved {
		t.Fatalf("Privileged view should show Blue's solve, got %#v", st)
	}
}

func TestLeaderboardUnknownContest(t *testing.T) {
	h := testHandler(t)
	w := doGet(t, h, "/contests/99/leaderboard")
	if w.Code != 404 {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLeaderboardCSV(t *testing.T) {
	h := testHandler(t)

	w := doGet(t, h, "/contests/1/leaderboard.csv")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if disp := w.Header().Get("Content-Disposition"); !strings.Contains(disp, "spring-finals-leaderboard.csv") {
		t.Fatalf("Expected slugged filename, got %q", disp)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %q", lines)
	}
	if lines[0] != "team,A,B,num_solved,penalty" {
		t.Fatalf("Unexpected header %q", lines[0])
	}
	if lines[1] != "Red,+ / 00:10,-,1,10" {
		t.Fatalf("Unexpected first row %q", lines[1])
	}
	if lines[2] != "Blue,?,-,0,0" {
		t.Fatalf("Unexpected second row %q", lines[2])
	}
}

func TestRunListEndpoint(t *testing.T) {
	h := testHandler(t)

	w := doGet(t, h, "/contests/1/runs")
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	list := decodeBody[*board.RunList](t, w).Data
	if list.Count != 2 || len(list.Runs) != 2 {
		t.Fatalf("Expected both runs, got %#v", list)
	}
	if list.Runs[1].Outcome != standings.OutcomePending {
		t.Fatalf("Frozen run should read as pending in the log, got %q", list.Runs[1].Outcome)
	}

	priv := decodeBody[*board.RunList](t, doGet(t, h, "/contests/1/runs?privileged=true")).Data
	if priv.Runs[1].Outcome != standings.OutcomeAccepted {
		t.Fatalf("Privileged log should show the real outcome, got %q", priv.Runs[1].Outcome)
	}

	filtered := decodeBody[*board.RunList](t, doGet(t, h, "/contests/1/runs?team_id=2")).Data
	if filtered.Count != 1 || len(filtered.Runs) != 1 || filtered.Runs[0].ID != 2 {
		t.Fatalf("Expected only Blue's run, got %#v", filtered.Runs)
	}

	if w := doGet(t, h, "/contests/99/runs"); w.Code != 404 {
		t.Fatalf("Unknown contest should 404, got %d", w.Code)
	}
}

func TestDeleteRunEndpoint(t *testing.T) {
	h := testHandler(t)

	if w := doDelete(t, h, "/runs/99"); w.Code != 404 {
		t.Fatalf("Unknown run should 404, got %d: %s", w.Code, w.Body.String())
	}
	if w := doDelete(t, h, "/runs/two"); w.Code != 400 {
		t.Fatalf("Malformed run ID should 400, got %d", w.Code)
	}
	if w := doDelete(t, h, "/runs/1"); w.Code != 200 {
		t.Fatalf("Couldn't delete run: %d %s", w.Code, w.Body.String())
	}

	list := decodeBody[*board.RunList](t, doGet(t, h, "/contests/1/runs")).Data
	if list.Count != 1 || list.Runs[0].ID != 2 {
		t.Fatalf("Run 1 should be gone from the log, got %#v", list.Runs)
	}
	// Red's only solve is gone, so Blue leads the true standings now.
	ld := decodeBody[*standings.Leaderboard](t, doGet(t, h, "/contests/1/leaderboard?privileged=true")).Data
	if ld.Entries[0].Team.TeamID != 2 || ld.Entries[0].NumSolved != 1 {
		t.Fatalf("Expected Blue on top after the deletion, got %#v", ld.Entries[0])
	}
	if ld.Entries[1].NumSolved != 0 {
		t.Fatalf("Red should have nothing left, got %#v", ld.Entries[1])
	}
}

func TestDeleteContestEndpoint(t *testing.T) {
	h := testHandler(t)

	if w := doDelete(t, h, "/contests/1"); w.Code != 200 {
		t.Fatalf("Couldn't delete contest: %d %s", w.Code, w.Body.String())
	}
	if w := doGet(t, h, "/contests/1"); w.Code != 404 {
		t.Fatalf("Deleted contest should 404, got %d: %s", w.Code, w.Body.String())
	}
	if w := doGet(t, h, "/contests/1/leaderboard"); w.Code != 404 {
		t.Fatalf("Deleted contest's board should 404, got %d", w.Code)
	}
}

func TestRosterEndpoints(t *testing.T) {
	h := testHandler(t)

	teams := decodeBody[[]*standings.Participant](t, doGet(t, h, "/contests/1/participants")).Data
	if len(teams) != 2 || teams[0].Name != "Red" {
		t.Fatalf("Expected the full roster, got %#v", teams)
	}

	if w := doDelete(t, h, "/contests/1/participants/99"); w.Code != 404 {
		t.Fatalf("Unknown team should 404, got %d: %s", w.Code, w.Body.String())
	}
	if w := doDelete(t, h, "/contests/1/participants/blue"); w.Code != 400 {
		t.Fatalf("Malformed team ID should 400, got %d", w.Code)
	}
	if w := doDelete(t, h, "/contests/1/participants/2"); w.Code != 200 {
		t.Fatalf("Couldn't unregister team: %d %s", w.Code, w.Body.String())
	}

	teams = decodeBody[[]*standings.Participant](t, doGet(t, h, "/contests/1/participants")).Data
	if len(teams) != 1 || teams[0].TeamID != 1 {
		t.Fatalf("Blue should be off the roster, got %#v", teams)
	}
	// The kicked team's runs go with it, frozen or not.
	list := decodeBody[*board.RunList](t, doGet(t, h, "/contests/1/runs?privileged=true")).Data
	if list.Count != 1 || list.Runs[0].TeamID != 1 {
		t.Fatalf("Expected only Red's run left, got %#v", list.Runs)
	}
}

func TestDeleteProblemEndpoint(t *testing.T) {
	h := testHandler(t)

	if w := doDelete(t, h, "/contests/1/problems/99"); w.Code != 404 {
		t.Fatalf("Unknown problem should 404, got %d: %s", w.Code, w.Body.String())
	}
	if w := doDelete(t, h, "/contests/1/problems/1"); w.Code != 200 {
		t.Fatalf("Couldn't delete problem: %d %s", w.Code, w.Body.String())
	}

	ld := decodeBody[*standings.Leaderboard](t, doGet(t, h, "/contests/1/leaderboard?privileged=true")).Data
	if len(ld.ProblemOrder) != 1 || ld.ProblemOrder[0] != 2 {
		t.Fatalf("Expected only problem B left, got %#v", ld.ProblemOrder)
	}
	// Both teams' solves were on the deleted problem.
	if ld.Entries[0].NumSolved != 0 || ld.Entries[1].NumSolved != 0 {
		t.Fatalf("Solves on a deleted problem should not score, got %#v", ld.Entries)
	}
}

func TestContestLifecycle(t *testing.T) {
	h := testHandler(t)

	w := doPostForm(t, h, "/contests", url.Values{
		"name":             {"Mirror Round"},
		"scoreboard_model": {"scorebased"},
	})
	if w.Code != 200 {
		t.Fatalf("Couldn't create contest: %d %s", w.Code, w.Body.String())
	}
	id := decodeBody[int](t, w).Data
	if id != 2 {
		t.Fatalf("Expected contest id 2, got %d", id)
	}

	if w := doPostForm(t, h, "/contests/2/problems", url.Values{"name": {"Anigma"}}); w.Code != 200 {
		t.Fatalf("Couldn't create problem: %d %s", w.Code, w.Body.String())
	}
	if w := doPostForm(t, h, "/contests/2/register", url.Values{"team_id": {"7"}, "name": {"Sigma"}, "group": {"Div 1"}}); w.Code != 200 {
		t.Fatalf("Couldn't register team: %d %s", w.Code, w.Body.String())
	}

	if w := doPostForm(t, h, "/contests/2/freeze", url.Values{"frozen": {"true"}}); w.Code != 200 {
		t.Fatalf("Couldn't freeze: %d %s", w.Code, w.Body.String())
	}
	contest := decodeBody[*standings.Contest](t, doGet(t, h, "/contests/2")).Data
	if !contest.Frozen {
		t.Fatal("Freeze toggle should be visible on the contest")
	}
	if contest.Model != standings.ModelScoreBased {
		t.Fatalf("Expected scorebased contest, got %q", contest.Model)
	}

	pbs := decodeBody[[]*standings.Problem](t, doGet(t, h, "/contests/2/problems")).Data
	if len(pbs) != 1 || pbs[0].Type != standings.ProblemTypeScoreBased {
		t.Fatalf("Problem should inherit the scorebased model, got %#v", pbs)
	}

	// No fields at all is a 400, not a silent success.
	if w := doPostForm(t, h, "/contests/2/update", url.Values{}); w.Code != 400 {
		t.Fatalf("Empty update should be rejected, got %d %s", w.Code, w.Body.String())
	}
}

func TestCreateContestValidation(t *testing.T) {
	h := testHandler(t)
	if w := doPostForm(t, h, "/contests", url.Values{}); w.Code != 400 {
		t.Fatalf("Nameless contest should be rejected, got %d %s", w.Code, w.Body.String())
	}
	if w := doPostForm(t, h, "/contests", url.Values{"name": {"X"}, "scoreboard_model": {"plf"}}); w.Code != 400 {
		t.Fatalf("Unknown model should be rejected, got %d %s", w.Code, w.Body.String())
	}
}

func TestCeremonyEndpoints(t *testing.T) {
	h := testHandler(t)

	w := doPostForm(t, h, "/ceremony", url.Values{"contest_id": {"1"}})
	if w.Code != 200 {
		t.Fatalf("Couldn't start ceremony: %d %s", w.Code, w.Body.String())
	}
	created := decodeBody[struct {
		SessionID string           `json:"session_id"`
		State     *ceremony.Result `json:"state"`
	}](t, w).Data
	if created.SessionID == "" {
		t.Fatal("Expected a session id")
	}
	if created.State.State != ceremony.StateIdle {
		t.Fatalf("Fresh ceremony should be idle, got %q", created.State.State)
	}

	adv := decodeBody[*ceremony.Result](t, doPostForm(t, h, "/ceremony/"+created.SessionID+"/advance", nil)).Data
	if adv.State != ceremony.StateFocused || adv.FocusedTeamID == nil || *adv.FocusedTeamID != 2 {
		t.Fatalf("First advance should focus Blue, got %#v", adv)
	}

	type stateResponse struct {
		ContestID      int              `json:"contest_id"`
		State          *ceremony.Result `json:"state"`
		AnnouncedRanks map[int]int      `json:"announced_ranks"`
	}
	state := decodeBody[stateResponse](t, doGet(t, h, "/ceremony/"+created.SessionID)).Data
	if state.ContestID != 1 {
		t.Fatalf("Expected contest 1, got %d", state.ContestID)
	}
	if state.State.State != ceremony.StateFocused {
		t.Fatalf("Snapshot should keep the focused state, got %q", state.State.State)
	}
	if len(state.AnnouncedRanks) != 0 {
		t.Fatalf("Nothing is announced yet, got %#v", state.AnnouncedRanks)
	}

	// Reveal Blue's hidden solve, then finalize the team. The late
	// solve is slower than Red's, so Blue settles in second place.
	reveal := decodeBody[*ceremony.Result](t, doPostForm(t, h, "/ceremony/"+created.SessionID+"/advance", nil)).Data
	if reveal.RevealedProblemID == nil || *reveal.RevealedProblemID != 1 {
		t.Fatalf("Expected problem 1 revealed, got %#v", reveal)
	}
	fin := decodeBody[*ceremony.Result](t, doPostForm(t, h, "/ceremony/"+created.SessionID+"/advance", nil)).Data
	if fin.FinalizedTeamID == nil || *fin.FinalizedTeamID != 2 || fin.FinalizedRank != 2 {
		t.Fatalf("Expected Blue finalized in second place, got %#v", fin)
	}
	state = decodeBody[stateResponse](t, doGet(t, h, "/ceremony/"+created.SessionID)).Data
	if len(state.AnnouncedRanks) != 1 || state.AnnouncedRanks[2] != 2 {
		t.Fatalf("Expected Blue's announced placement, got %#v", state.AnnouncedRanks)
	}

	if w := doPostForm(t, h, "/ceremony/"+created.SessionID+"/stop", nil); w.Code != 200 {
		t.Fatalf("Couldn't stop ceremony: %d %s", w.Code, w.Body.String())
	}
	if w := doGet(t, h, "/ceremony/"+created.SessionID); w.Code != 404 {
		t.Fatalf("Stopped session should 404, got %d", w.Code)
	}

	if w := doPostForm(t, h, "/ceremony", url.Values{"contest_id": {"99"}}); w.Code != 404 {
		t.Fatalf("Unknown contest should 404, got %d %s", w.Code, w.Body.String())
	}
}

var echoFlag = config.GenFlag[bool]("test.api.echo", false, "Test flag")

func TestFlagEndpoints(t *testing.T) {
	h := testHandler(t)

	flags := decodeBody[struct {
		BoolFlags []struct {
			InternalName string `json:"internal_name"`
			Value        bool   `json:"value"`
		} `json:"bool_flags"`
	}](t, doGet(t, h, "/admin/flags")).Data
	found := false
	for _, flg := range flags.BoolFlags {
		if flg.InternalName == "feature.leaderboard.csv_export" && flg.Value {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected the CSV export flag in the listing, got %#v", flags.BoolFlags)
	}

	defer echoFlag.Update(false)
	req := httptest.NewRequest("POST", "/admin/updateFlags", strings.NewReader(`{"bool_flags":{"test.api.echo":true,"no.such.flag":true}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("Couldn't update flags: %d %s", w.Code, w.Body.String())
	}
	if !echoFlag.Value() {
		t.Fatal("Flag update should be visible")
	}
}
