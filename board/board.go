// Package board is the service boundary around the scoring engine.
// Producers push run events through it, consumers pull leaderboards
// and ceremony steps out of it, and nothing on either side talks to
// the ranking math or the persistence layer directly.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/aojudge/standings"
	"github.com/aojudge/standings/internal/config"
	"golang.org/x/sync/singleflight"
)

// ContestCacheTTL bounds how stale the cached contest/roster snapshot
// may get for readers that never write. Writes invalidate eagerly.
var ContestCacheTTL = config.GenFlag[int]("behavior.board.contest_cache_ttl", 10, "Contest snapshot cache TTL (in seconds)")

// Store is the persistence surface the service needs. *db.DB is the
// production implementation.
type Store interface {
	Contest(ctx context.Context, id int) (*standings.Contest, error)
	Contests(ctx context.Context) ([]*standings.Contest, error)
	CreateContest(ctx context.Context, c *standings.Contest) (int, error)
	UpdateContest(ctx context.Context, id int, upd standings.ContestUpdate) error
	DeleteContest(ctx context.Context, id int) error

	Problem(ctx context.Context, id int) (*standings.Problem, error)
	Problems(ctx context.Context, contestID int) ([]*standings.Problem, error)
	CreateProblem(ctx context.Context, pb *standings.Problem) (int, error)
	DeleteProblem(ctx context.Context, id int) error

	Participant(ctx context.Context, contestID, teamID int) (*standings.Participant, error)
	Participants(ctx context.Context, contestID int) ([]*standings.Participant, error)
	AddParticipant(ctx context.Context, p *standings.Participant) error
	DeleteParticipant(ctx context.Context, contestID, teamID int) error

	Run(ctx context.Context, id int) (*standings.Run, error)
	Runs(ctx context.Context, filter standings.RunFilter) ([]*standings.Run, error)
	RunCount(ctx context.Context, filter standings.RunFilter) (int, error)
	SaveRun(ctx context.Context, contestID int, run *standings.Run) error
	DeleteRun(ctx context.Context, id int) error
	DeleteTeamRuns(ctx context.Context, contestID, teamID int) error
}

// ContestData is the slow-moving half of a scoreboard: the contest
// row plus its problem and team rosters. Runs are always read fresh.
type ContestData struct {
	Contest      *standings.Contest
	Problems     []*standings.Problem
	Participants []*standings.Participant
}

type API struct {
	store Store

	contestCache *theine.LoadingCache[int, *ContestData]

	// boardGroup collapses concurrent leaderboard requests for the
	// same contest and viewpoint into one computation.
	boardGroup singleflight.Group

	broker *Broker

	mu       sync.Mutex
	sessions map[string]*ceremonySession
}

func New(store Store) (*API, error) {
	s := &API{
		store:    store,
		broker:   NewBroker(),
		sessions: make(map[string]*ceremonySession),
	}

	contestCache, err := theine.NewBuilder[int, *ContestData](200).BuildWithLoader(func(ctx context.Context, contestID int) (theine.Loaded[*ContestData], error) {
		data, err := s.fetchContestData(ctx, contestID)
		if err != nil {
			return theine.Loaded[*ContestData]{}, err
		}
		return theine.Loaded[*ContestData]{
			Value: data,
			Cost:  1,
			TTL:   time.Duration(ContestCacheTTL.Value()) * time.Second,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not build contest cache: %w", err)
	}
	s.contestCache = contestCache

	return s, nil
}

func (s *API) Start(ctx context.Context) {
	go s.cleanupCeremoniesJob(ctx, 15*time.Minute)
}

func (s *API) Close() error {
	s.broker.Close()
	return nil
}

func (s *API) fetchContestData(ctx context.Context, contestID int) (*ContestData, error) {
	contest, err := s.store.Contest(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest == nil {
		return nil, ErrNotFound
	}
	problems, err := s.store.Problems(ctx, contestID)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.Participants(ctx, contestID)
	if err != nil {
		return nil, err
	}
	return &ContestData{Contest: contest, Problems: problems, Participants: participants}, nil
}

// ContestData loads the cached contest snapshot. Writes that change
// it go through invalidateContest.
func (s *API) ContestData(ctx context.Context, contestID int) (*ContestData, *StatusError) {
	data, err := s.contestCache.Get(ctx, contestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, WrapError(ErrNotFound, "Contest not found")
		}
		return nil, WrapError(err, "Couldn't load contest")
	}
	return data, nil
}

func (s *API) Contest(ctx context.Context, contestID int) (*standings.Contest, *StatusError) {
	data, err := s.ContestData(ctx, contestID)
	if err != nil {
		return nil, err
	}
	return data.Contest, nil
}

func (s *API) Contests(ctx context.Context) ([]*standings.Contest, *StatusError) {
	contests, err := s.store.Contests(ctx)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch contests")
	}
	return contests, nil
}

func (s *API) UpdateContest(ctx context.Context, contestID int, upd standings.ContestUpdate) *StatusError {
	if err := s.store.UpdateContest(ctx, contestID, upd); err != nil {
		if errors.Is(err, ErrNoUpdates) {
			return WrapError(ErrNoUpdates, "No fields to update")
		}
		slog.WarnContext(ctx, "Couldn't update contest", slog.Any("err", err))
		return WrapError(err, "Couldn't update contest")
	}
	s.invalidateContest(contestID)
	return nil
}

// SetFrozen flips the operator's freeze switch. The stored cutoff
// stays as configured, only its enforcement toggles.
func (s *API) SetFrozen(ctx context.Context, contestID int, frozen bool) *StatusError {
	if err := s.UpdateContest(ctx, contestID, standings.ContestUpdate{Frozen: &frozen}); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Toggled scoreboard freeze", slog.Int("contest_id", contestID), slog.Bool("frozen", frozen))
	return nil
}

func (s *API) invalidateContest(contestID int) {
	s.contestCache.Delete(contestID)
}
