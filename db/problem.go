package db

import (
	"context"
	"errors"
	"time"

	"github.com/aojudge/standings"
	"github.com/jackc/pgx/v5"
)

type dbProblem struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`

	ContestID int    `db:"contest_id"`
	Position  int    `db:"position"`
	Type      string `db:"problem_type"`
}

func (pb *dbProblem) toProblem() *standings.Problem {
	return &standings.Problem{
		ID:        pb.ID,
		CreatedAt: pb.CreatedAt,
		Name:      pb.Name,
		ContestID: pb.ContestID,
		Position:  pb.Position,
		Type:      standings.ProblemType(pb.Type),
	}
}

func (s *DB) Problems(ctx context.Context, contestID int) ([]*standings.Problem, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contest_problems WHERE contest_id = $1 ORDER BY position ASC, id ASC", contestID)
	pbs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbProblem])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*standings.Problem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(pbs, (*dbProblem).toProblem), nil
}

func (s *DB) Problem(ctx context.Context, id int) (*standings.Problem, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM contest_problems WHERE id = $1 LIMIT 1", id)
	pb, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[dbProblem])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pb.toProblem(), nil
}

func (s *DB) CreateProblem(ctx context.Context, pb *standings.Problem) (int, error) {
	if pb == nil || pb.Name == "" || pb.ContestID == 0 {
		return -1, standings.ErrMissingRequired
	}
	var id int
	err := s.conn.QueryRow(ctx,
		"INSERT INTO contest_problems (contest_id, name, position, problem_type) VALUES ($1, $2, $3, $4) RETURNING id",
		pb.ContestID, pb.Name, pb.Position, string(pb.Type),
	).Scan(&id)
	if err != nil {
		return -1, err
	}
	return id, nil
}

// DeleteProblem removes a problem together with every run judged on
// it. Runs carry no foreign key to problems, so the cleanup is
// explicit and transactional.
func (s *DB) DeleteProblem(ctx context.Context, id int) error {
	return pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM runs WHERE problem_id = $1", id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, "DELETE FROM contest_problems WHERE id = $1", id)
		return err
	})
}
