package db

import (
	"context"
	"errors"
	"time"

	"github.com/aojudge/standings"
	"github.com/jackc/pgx/v5"
)

type dbParticipant struct {
	TeamID    int       `db:"team_id"`
	ContestID int       `db:"contest_id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Group     string    `db:"group_label"`
}

func (p *dbParticipant) toParticipant() *standings.Participant {
	return &standings.Participant{
		TeamID:    p.TeamID,
		ContestID: p.ContestID,
		CreatedAt: p.CreatedAt,
		Name:      p.Name,
		Group:     p.Group,
	}
}

func (s *DB) Participants(ctx context.Context, contestID int) ([]*standings.Participant, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contest_registrations WHERE contest_id = $1 ORDER BY created_at ASC, team_id ASC", contestID)
	regs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbParticipant])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*standings.Participant{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(regs, (*dbParticipant).toParticipant), nil
}

func (s *DB) Participant(ctx context.Context, contestID, teamID int) (*standings.Participant, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contest_registrations WHERE contest_id = $1 AND team_id = $2 LIMIT 1", contestID, teamID)
	reg, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[dbParticipant])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reg.toParticipant(), nil
}

// AddParticipant registers a team. Re-registering the same team only
// refreshes its display name and group label.
func (s *DB) AddParticipant(ctx context.Context, p *standings.Participant) error {
	if p == nil || p.Name == "" {
		return standings.ErrMissingRequired
	}
	_, err := s.conn.Exec(ctx,
		"INSERT INTO contest_registrations (contest_id, team_id, name, group_label) VALUES ($1, $2, $3, $4) ON CONFLICT (contest_id, team_id) DO UPDATE SET name = EXCLUDED.name, group_label = EXCLUDED.group_label",
		p.ContestID, p.TeamID, p.Name, p.Group)
	return err
}

func (s *DB) DeleteParticipant(ctx context.Context, contestID, teamID int) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM contest_registrations WHERE contest_id = $1 AND team_id = $2", contestID, teamID)
	return err
}
