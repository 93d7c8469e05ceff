package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-program/internal/config"
	"github.com/iliyamo/conference-program/internal/database"
	"github.com/iliyamo/conference-program/internal/handler"
	"github.com/iliyamo/conference-program/internal/logger"
	"github.com/iliyamo/conference-program/internal/program"
	"github.com/iliyamo/conference-program/internal/queue"
	"github.com/iliyamo/conference-program/internal/repository"
	"github.com/iliyamo/conference-program/internal/router"
	"github.com/iliyamo/conference-program/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()
	lg := logger.New(cfg.Env)
	defer func() { _ = lg.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Warnw("redis unavailable, caching and rate limiting disabled")
	}

	conferenceRepo := repository.NewConferenceRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	presentationRepo := repository.NewPresentationRepo(db)
	userRepo := repository.NewUserRepo(db)

	aggregator := program.NewAggregator(conferenceRepo, submissionRepo, sessionRepo, presentationRepo, userRepo)
	assembler := program.NewAssembler(sessionRepo, submissionRepo, presentationRepo, conferenceRepo)
	grouping := program.NewGroupingEngine(conferenceRepo, submissionRepo)
	conflicts := program.NewConflictDetector(conferenceRepo, sessionRepo)
	publisher := service.NewPublisher(cfg.AMQPURL, lg)

	programHandler := handler.NewProgramHandler(aggregator, assembler, grouping, conflicts, publisher, lg)

	// Background audit consumer; runs its own reconnect loop.
	go func() {
		if err := queue.StartProgramConsumer(cfg.AMQPURL); err != nil {
			lg.Warnw("program consumer stopped", "err", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterProgram(e, programHandler, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	lg.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		lg.Fatalw("server stopped", "err", err)
	}
}
