package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/InfraBits/trello-ics-shimmy/api"
	"github.com/InfraBits/trello-ics-shimmy/integrations"
	"github.com/InfraBits/trello-ics-shimmy/internal/config"
	"github.com/InfraBits/trello-ics-shimmy/internal/ics"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := logConfig.Build()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Error loading configuration", zap.Error(err))
	}
	if cfg.APIToken == "" {
		zap.L().Warn("No Trello access token configured; visit /a/<secret> to authorize")
	}

	trelloClient := integrations.NewTrelloClient(cfg.APIKey, cfg.APIToken)
	builder := ics.NewBuilder(trelloClient, cfg.BoardID)

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	handler := &api.Handler{
		Cfg:     cfg,
		Trello:  trelloClient,
		Builder: builder,
	}
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	zap.L().Info("Starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("boardID", cfg.BoardID))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	zap.L().Info("Shutdown initiated", zap.String("reason", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("Error shutting down server", zap.Error(err))
	} else {
		zap.L().Info("HTTP server shut down gracefully.")
	}
}
