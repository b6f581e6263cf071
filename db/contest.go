package db

import (
	"context"
	"errors"
	"time"

	"github.com/aojudge/standings"
	"github.com/jackc/pgx/v5"
)

type dbContest struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`

	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`

	FreezeMinutes  int  `db:"freeze_minutes"`
	Frozen         bool `db:"frozen"`
	PenaltyMinutes int  `db:"penalty_minutes"`

	Model string `db:"scoreboard_model"`
}

func (c *dbContest) toContest() *standings.Contest {
	return &standings.Contest{
		ID:             c.ID,
		CreatedAt:      c.CreatedAt,
		Name:           c.Name,
		StartTime:      c.StartTime,
		EndTime:        c.EndTime,
		FreezeMinutes:  c.FreezeMinutes,
		Frozen:         c.Frozen,
		PenaltyMinutes: c.PenaltyMinutes,
		Model:          standings.ScoreboardModel(c.Model),
	}
}

func (s *DB) Contest(ctx context.Context, id int) (*standings.Contest, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contests WHERE id = $1 LIMIT 1", id)
	contest, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[dbContest])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contest.toContest(), nil
}

func (s *DB) Contests(ctx context.Context) ([]*standings.Contest, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contests ORDER BY start_time DESC, id DESC")
	contests, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbContest])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*standings.Contest{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(contests, (*dbContest).toContest), nil
}

func (s *DB) CreateContest(ctx context.Context, c *standings.Contest) (int, error) {
	if c == nil || c.Name == "" {
		return -1, standings.ErrMissingRequired
	}
	var id int
	err := s.conn.QueryRow(ctx,
		"INSERT INTO contests (name, start_time, end_time, freeze_minutes, frozen, penalty_minutes, scoreboard_model) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		c.Name, c.StartTime, c.EndTime, c.FreezeMinutes, c.Frozen, c.PenaltyMinutes, string(c.Model),
	).Scan(&id)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (s *DB) UpdateContest(ctx context.Context, id int, upd standings.ContestUpdate) error {
	ub := newUpdateBuilder()
	contestUpdateQuery(&upd, ub)
	if err := ub.CheckUpdates(); err != nil {
		return err
	}
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", id)
	_, err := s.conn.Exec(ctx, "UPDATE contests SET "+fb.WithUpdate(), fb.Args()...)
	return err
}

func (s *DB) DeleteContest(ctx context.Context, id int) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM contests WHERE id = $1", id)
	return err
}

func contestUpdateQuery(upd *standings.ContestUpdate, ub *updateBuilder) {
	if v := upd.Name; v != nil {
		ub.AddUpdate("name = %s", v)
	}
	if v := upd.StartTime; v != nil {
		ub.AddUpdate("start_time = %s", v)
	}
	if v := upd.EndTime; v != nil {
		ub.AddUpdate("end_time = %s", v)
	}
	if v := upd.FreezeMinutes; v != nil {
		ub.AddUpdate("freeze_minutes = %s", v)
	}
	if v := upd.Frozen; v != nil {
		ub.AddUpdate("frozen = %s", v)
	}
	if v := upd.PenaltyMinutes; v != nil {
		ub.AddUpdate("penalty_minutes = %s", v)
	}
	if v := upd.Model; v != nil {
		ub.AddUpdate("scoreboard_model = %s", string(*v))
	}
}
