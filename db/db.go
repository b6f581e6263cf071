package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func init() {
	// Set dollar placeholder format for squirrel
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type DB struct {
	conn *pgxpool.Pool
}

func (d *DB) Close() error {
	d.conn.Close()
	return nil
}

func NewPSQL(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	// Scores are numeric in the database and decimal.Decimal in Go.
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return &DB{conn}, nil
}

func mapper[T1 any, T2 any](lst []*T1, f func(*T1) *T2) []*T2 {
	if len(lst) == 0 {
		return []*T2{}
	}
	rez := make([]*T2, len(lst))
	for i := range rez {
		rez[i] = f(lst[i])
	}
	return rez
}
