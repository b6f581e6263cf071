package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/scoring"
)

func boardKey(contestID int, opts scoring.Options) string {
	return fmt.Sprintf("board/%d/%t/%t", contestID, opts.Privileged, opts.ShowFrozen)
}

// Leaderboard computes the standings for one contest and viewpoint.
// Concurrent requests for the same key ride on a single computation
// instead of all hitting the database at the same time.
func (s *API) Leaderboard(ctx context.Context, contestID int, opts scoring.Options) (*standings.Leaderboard, *StatusError) {
	result, err, _ := s.boardGroup.Do(boardKey(contestID, opts), func() (any, error) {
		data, err1 := s.ContestData(ctx, contestID)
		if err1 != nil {
			return nil, err1
		}
		runs, err := s.store.Runs(ctx, standings.RunFilter{ContestID: contestID})
		if err != nil {
			return nil, err
		}
		return scoring.Compute(data.Contest, data.Problems, data.Participants, runs, opts)
	})
	if err != nil {
		var status *StatusError
		if errors.As(err, &status) {
			return nil, status
		}
		return nil, WrapError(err, "Couldn't compute leaderboard")
	}
	return result.(*standings.Leaderboard), nil
}

// IngestRun records a judged run and fans it out to subscribers. A
// rejudge reuses the run ID and simply overwrites the stored row, so
// the scoreboard always reflects the latest verdict.
func (s *API) IngestRun(ctx context.Context, contestID int, run *standings.Run) *StatusError {
	if run == nil {
		return ErrMissingRequired
	}
	if err := s.store.SaveRun(ctx, contestID, run); err != nil {
		slog.WarnContext(ctx, "Couldn't persist run", slog.Any("err", err), slog.Int("run_id", run.ID))
		return WrapError(err, "Couldn't persist run")
	}
	s.broker.Publish(&RunEvent{ContestID: contestID, Run: run})
	return nil
}
