package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"

	"github.com/jackc/pgx/v5"
)

// Inspired by https://github.com/miniflux/v2/blob/main/internal/database/database.go

//go:embed psql_schema
var migrationFiles embed.FS

type migration struct {
	id      int
	name    string
	handler func(ctx context.Context, tx pgx.Tx) error
}

// Order is important. Add new migrations at the end of the list.
var migrations = []migration{
	{
		id:      1,
		name:    "Base schema",
		handler: runFile("001.base.sql"),
	},
}

func (s *DB) RunMigrations(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version integer NOT NULL)"); err != nil {
		return fmt.Errorf("could not create schema version table: %w", err)
	}

	var databaseSchema int
	s.conn.QueryRow(ctx, "SELECT version FROM schema_version").Scan(&databaseSchema)
	slog.DebugContext(ctx, "Checked DB schema", slog.Int("version", databaseSchema))
	for _, mig := range migrations {
		if mig.id <= databaseSchema {
			continue
		}
		slog.InfoContext(ctx, "Executing migration", slog.Int("migration_id", mig.id), slog.String("name", mig.name))

		if err := pgx.BeginFunc(ctx, s.conn, func(tx pgx.Tx) error {
			if err := mig.handler(ctx, tx); err != nil {
				return err
			}

			if _, err := tx.Exec(ctx, `DELETE FROM schema_version`); err != nil {
				return fmt.Errorf("could not clear schema version: %w", err)
			}

			if _, err := tx.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, mig.id); err != nil {
				return fmt.Errorf("could not update schema version: %w", err)
			}

			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func runFile(name string) func(ctx context.Context, tx pgx.Tx) error {
	return func(ctx context.Context, tx pgx.Tx) error {
		f, err := migrationFiles.ReadFile(path.Join("psql_schema", name))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, string(f))
		return err
	}
}
