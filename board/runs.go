package board

import (
	"context"
	"log/slog"

	"github.com/aojudge/standings"
)

// RunList is a page of a contest's run log.
type RunList struct {
	Runs  []*standings.Run `json:"runs"`
	Count int              `json:"count"`
}

// Runs lists a contest's judged runs. The freeze applies here exactly
// as on the leaderboard: a non-privileged viewer gets masked copies of
// everything past the cutoff, so the run log cannot be used to peek
// behind a frozen board.
func (s *API) Runs(ctx context.Context, contestID int, filter standings.RunFilter, privileged bool) (*RunList, *StatusError) {
	data, err := s.ContestData(ctx, contestID)
	if err != nil {
		return nil, err
	}

	filter.ContestID = contestID
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	runs, err1 := s.store.Runs(ctx, filter)
	if err1 != nil {
		return nil, WrapError(err1, "Couldn't fetch runs")
	}
	count, err1 := s.store.RunCount(ctx, filter)
	if err1 != nil {
		return nil, WrapError(err1, "Couldn't count runs")
	}

	cutoff := data.Contest.FreezeOffset()
	if data.Contest.Frozen && cutoff != nil && !privileged {
		display := make([]*standings.Run, len(runs))
		for i, r := range runs {
			if r.Time >= *cutoff {
				display[i] = r.Masked()
			} else {
				display[i] = r
			}
		}
		runs = display
	}
	return &RunList{Runs: runs, Count: count}, nil
}

// DeleteRun removes a mis-ingested run from the board entirely. For a
// rejudge the judge re-sends the run under the same ID instead.
func (s *API) DeleteRun(ctx context.Context, runID int) *StatusError {
	run, err := s.store.Run(ctx, runID)
	if err != nil {
		return WrapError(err, "Couldn't fetch run")
	}
	if run == nil {
		return WrapError(ErrNotFound, "Run not found")
	}
	if err := s.store.DeleteRun(ctx, runID); err != nil {
		return WrapError(err, "Couldn't delete run")
	}
	slog.InfoContext(ctx, "Deleted run", slog.Int("run_id", runID))
	return nil
}
