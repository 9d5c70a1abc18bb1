package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/bank"
	"github.com/cloudprep/mockexam-backend/internal/config"
	"github.com/cloudprep/mockexam-backend/internal/handler"
	"github.com/cloudprep/mockexam-backend/internal/history"
	"github.com/cloudprep/mockexam-backend/internal/logger"
	"github.com/cloudprep/mockexam-backend/internal/random"
	"github.com/cloudprep/mockexam-backend/internal/router"
	"github.com/cloudprep/mockexam-backend/internal/service"
	"github.com/cloudprep/mockexam-backend/internal/validator"
	"github.com/cloudprep/mockexam-backend/internal/websocket"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Mock Exam Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Load Banks ────────────────────────────────────────────────────
	// Malformed bank data fails fast here rather than rendering a broken
	// question mid-exam.
	banks, err := bank.Load(cfg.BankDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load banks")
	}
	if cfg.QuestionCount > len(banks.Questions) {
		log.Fatal().
			Int("requested", cfg.QuestionCount).
			Int("bank_size", len(banks.Questions)).
			Msg("QUESTION_COUNT exceeds the question bank size")
	}

	// ─── Open History Store ────────────────────────────────────────────
	historyStore := history.Open(cfg.HistoryDBPath, log)
	defer historyStore.Close()

	// ─── Initialize Services ──────────────────────────────────────────
	hub := websocket.NewHub(log)
	drawer := random.New(nil)
	resourceService := service.NewResourceService(cfg, banks, log)
	examService := service.NewExamService(cfg, banks, drawer, historyStore, resourceService, hub, log)
	defer examService.Shutdown()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:     handler.NewExamHandler(examService, resourceService),
		Resource: handler.NewResourceHandler(resourceService),
		History:  handler.NewHistoryHandler(examService),
		WS:       handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
