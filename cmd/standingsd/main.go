package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/api"
	"github.com/aojudge/standings/board"
	"github.com/aojudge/standings/db"
	"github.com/aojudge/standings/ingest"
	"github.com/aojudge/standings/integrations/prometheus"
	"github.com/aojudge/standings/internal/config"
	"github.com/joho/godotenv"
)

var (
	confPath  = flag.String("config", "./config.toml", "Config path")
	flagsPath = flag.String("flags", "./flags.json", "Runtime flags path")
)

func main() {
	flag.Parse()

	// .env is optional. In development it mostly carries STANDINGS_FLAG_OVERRIDES.
	godotenv.Load()

	if err := config.Load(*confPath); err != nil {
		panic(err)
	}

	if err := Standings(); err != nil {
		slog.Error("Could not run scoreboard server", slog.Any("err", err))
		os.Exit(1)
	}
}

func Standings() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := standings.InitLogger(config.C.Common.Debug, config.C.Common.LogDir); err != nil {
		return err
	}

	config.SetFlagsPath(*flagsPath)
	if err := config.LoadFlags(ctx, true); err != nil {
		return err
	}

	if config.C.Common.Debug {
		slog.WarnContext(ctx, "Debug mode activated, expect worse performance")
	}

	// DB Setup
	base, err := db.NewPSQL(ctx, config.C.Database.String())
	if err != nil {
		return err
	}
	defer base.Close()
	slog.InfoContext(ctx, "Connected to DB")

	if err := base.RunMigrations(ctx); err != nil {
		return err
	}

	boardAPI, err := board.New(base)
	if err != nil {
		return err
	}
	boardAPI.Start(ctx)
	defer boardAPI.Close()

	// Judge results come in over Redis.
	listener, err := ingest.New(config.C.Judge.Host, config.C.Judge.Password, config.C.Judge.DB, boardAPI)
	if err != nil {
		return err
	}
	defer listener.Close()
	go func() {
		if err := listener.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "Judge listener stopped", slog.Any("err", err))
			cancel()
		}
	}()

	prometheus.InitMetrics()

	addr := config.C.Common.Address
	if addr == "" {
		addr = "localhost:8075"
	}

	// for graceful setup and shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: api.New(boardAPI).Handler(),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "Could not serve API", slog.Any("err", err))
			cancel()
		}
	}()

	slog.InfoContext(ctx, "Successfully started", slog.String("addr", addr))

	<-ctx.Done()

	slog.Info("Shutting Down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := server.Shutdown(shutCtx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Could not cleanly shut down server", slog.Any("err", err))
	}

	return nil
}
