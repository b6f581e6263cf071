package db

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aojudge/standings"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dbRun struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ContestID int `db:"contest_id"`
	TeamID    int `db:"team_id"`
	ProblemID int `db:"problem_id"`

	// TimeSeconds is the submission instant in seconds from contest
	// start, the judge's clock, not ours.
	TimeSeconds int64  `db:"time_seconds"`
	Outcome     string `db:"outcome"`

	Score decimal.Decimal `db:"score"`

	ProblemType  string `db:"problem_type"`
	TaskType     *int   `db:"task_type"`
	EditDistance *int   `db:"edit_distance"`
}

func (r *dbRun) toRun() *standings.Run {
	return &standings.Run{
		ID:           r.ID,
		TeamID:       r.TeamID,
		ProblemID:    r.ProblemID,
		Time:         r.TimeSeconds,
		Outcome:      standings.RunOutcome(r.Outcome),
		Score:        r.Score,
		ProblemType:  standings.ProblemType(r.ProblemType),
		TaskType:     r.TaskType,
		EditDistance: r.EditDistance,
	}
}

func runFilterQuery(filter *standings.RunFilter, sb sq.SelectBuilder) sq.SelectBuilder {
	sb = sb.Where(sq.Eq{"contest_id": filter.ContestID})
	if v := filter.TeamID; v != nil {
		sb = sb.Where(sq.Eq{"team_id": v})
	}
	if v := filter.ProblemID; v != nil {
		sb = sb.Where(sq.Eq{"problem_id": v})
	}
	if filter.Limit > 0 {
		sb = sb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sb = sb.Offset(uint64(filter.Offset))
	}
	return sb
}

func (s *DB) Runs(ctx context.Context, filter standings.RunFilter) ([]*standings.Run, error) {
	sb := sq.Select("*").From("runs")
	sb = runFilterQuery(&filter, sb)
	query, args, err := sb.OrderBy("time_seconds ASC", "id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, _ := s.conn.Query(ctx, query, args...)
	runs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbRun])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*standings.Run{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(runs, (*dbRun).toRun), nil
}

func (s *DB) Run(ctx context.Context, id int) (*standings.Run, error) {
	rows, _ := s.conn.Query(ctx, "SELECT * FROM runs WHERE id = $1 LIMIT 1", id)
	run, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[dbRun])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run.toRun(), nil
}

func (s *DB) RunCount(ctx context.Context, filter standings.RunFilter) (int, error) {
	sb := sq.Select("COUNT(*)").From("runs")
	sb = runFilterQuery(&filter, sb).RemoveLimit().RemoveOffset()
	query, args, err := sb.ToSql()
	if err != nil {
		return -1, err
	}

	var count int
	err = s.conn.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

// SaveRun upserts on the judge-assigned run ID: a rejudge carries the
// same ID and simply replaces the stored result.
func (s *DB) SaveRun(ctx context.Context, contestID int, run *standings.Run) error {
	if run == nil {
		return standings.ErrMissingRequired
	}
	_, err := s.conn.Exec(ctx, `
INSERT INTO runs (id, contest_id, team_id, problem_id, time_seconds, outcome, score, problem_type, task_type, edit_distance)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	contest_id = EXCLUDED.contest_id, team_id = EXCLUDED.team_id, problem_id = EXCLUDED.problem_id,
	time_seconds = EXCLUDED.time_seconds, outcome = EXCLUDED.outcome, score = EXCLUDED.score,
	problem_type = EXCLUDED.problem_type, task_type = EXCLUDED.task_type, edit_distance = EXCLUDED.edit_distance`,
		run.ID, contestID, run.TeamID, run.ProblemID, run.Time, string(run.Outcome), run.Score,
		string(run.ProblemType), run.TaskType, run.EditDistance)
	return err
}

func (s *DB) DeleteRun(ctx context.Context, id int) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM runs WHERE id = $1", id)
	return err
}

func (s *DB) DeleteTeamRuns(ctx context.Context, contestID, teamID int) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM runs WHERE contest_id = $1 AND team_id = $2", contestID, teamID)
	return err
}
