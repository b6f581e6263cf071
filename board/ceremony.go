package board

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/ceremony"
)

type ceremonySession struct {
	stepper  *ceremony.Stepper
	created  time.Time
	lastUsed time.Time
}

// StartCeremony snapshots a contest into a new ceremony session and
// returns its stepper. The snapshot is taken once: runs judged after
// this point do not appear in the ceremony.
func (s *API) StartCeremony(ctx context.Context, contestID int) (*ceremony.Stepper, *StatusError) {
	data, err := s.ContestData(ctx, contestID)
	if err != nil {
		return nil, err
	}
	runs, err1 := s.store.Runs(ctx, standings.RunFilter{ContestID: contestID})
	if err1 != nil {
		return nil, WrapError(err1, "Couldn't fetch runs")
	}

	stepper, err1 := ceremony.NewStepper(data.Contest, data.Problems, data.Participants, runs)
	if err1 != nil {
		return nil, WrapError(err1, "Couldn't start ceremony")
	}

	now := time.Now()
	s.mu.Lock()
	s.sessions[stepper.ID()] = &ceremonySession{stepper: stepper, created: now, lastUsed: now}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Started award ceremony",
		slog.String("session_id", stepper.ID()), slog.Int("contest_id", contestID))
	return stepper, nil
}

func (s *API) Ceremony(sessionID string) (*ceremony.Stepper, *StatusError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, WrapError(ErrNotFound, "Ceremony session not found")
	}
	sess.lastUsed = time.Now()
	return sess.stepper, nil
}

func (s *API) AdvanceCeremony(sessionID string) (*ceremony.Result, *StatusError) {
	stepper, err := s.Ceremony(sessionID)
	if err != nil {
		return nil, err
	}
	return stepper.Advance(), nil
}

func (s *API) CeremonySnapshot(sessionID string) (*ceremony.Result, *StatusError) {
	stepper, err := s.Ceremony(sessionID)
	if err != nil {
		return nil, err
	}
	return stepper.Snapshot(), nil
}

func (s *API) StopCeremony(ctx context.Context, sessionID string) *StatusError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return WrapError(ErrNotFound, "Ceremony session not found")
	}
	delete(s.sessions, sessionID)
	slog.InfoContext(ctx, "Stopped award ceremony", slog.String("session_id", sessionID))
	return nil
}

// cleanupCeremoniesJob drops sessions nobody touched for a while, so
// an announcer that walked away does not pin contest snapshots in
// memory forever.
func (s *API) cleanupCeremoniesJob(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				return ctx.Err()
			}
			return nil
		case <-t.C:
			s.expireCeremonies(4 * time.Hour)
		}
	}
}

func (s *API) expireCeremonies(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if time.Since(sess.lastUsed) > maxIdle {
			slog.Debug("Expiring idle ceremony session", slog.String("session_id", id))
			delete(s.sessions, id)
		}
	}
}
