package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-board/api"
	"github.com/saeidalz13/battleship-board/db"
	"github.com/saeidalz13/battleship-board/db/sqlc"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

type config struct {
	stage           string
	port            int
	databaseUrl     string
	logLevel        zerolog.Level
	cleanupInterval time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadConfig() (config, error) {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return config{}, err
		}
	}

	cfg := config{
		stage:       os.Getenv("STAGE"),
		databaseUrl: os.Getenv("DATABASE_URL"),
	}
	if cfg.stage != api.StageDev && cfg.stage != api.StageProd {
		return config{}, fmt.Errorf("stage must be either dev or prod, got: %q", cfg.stage)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8000"))
	if err != nil {
		return config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.port = port

	cfg.logLevel, err = zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.cleanupInterval, err = time.ParseDuration(getEnv("SESSION_CLEANUP_INTERVAL", "20m"))
	if err != nil {
		return config{}, fmt.Errorf("invalid SESSION_CLEANUP_INTERVAL: %w", err)
	}

	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.SetGlobalLevel(cfg.logLevel)
	if cfg.stage == api.StageDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var dbManager *sqlc.DbManager
	if cfg.databaseUrl != "" {
		conn := db.MustConnectToDb(cfg.databaseUrl, db.DefaultMigrationDir)
		defer conn.Close()
		dbManager = sqlc.NewDbManager(conn)
	} else {
		log.Warn().Msg("DATABASE_URL is empty; analytics are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionManager := mc.NewBattleshipSessionManager(cfg.cleanupInterval)
	go sessionManager.CleanupPeriodically(ctx)

	rp := api.NewRequestProcessor(sessionManager, mb.NewBattleshipBoardManager(), dbManager)
	server, err := api.NewServer(rp, api.WithPort(cfg.port), api.WithStage(cfg.stage))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	httpServer := server.HttpServer()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("stage", server.Stage()).Str("addr", server.Addr()).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
