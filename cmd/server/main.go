package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "surveyhub/docs"
	"surveyhub/internal/app"
	"surveyhub/internal/config"
	"surveyhub/internal/log"
)

// @title SurveyHub API
// @version 1.0
// @description Create surveys, collect responses and watch results live.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("unknown log level %q, keeping info", cfg.LogLevel)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("server listening on :%s", cfg.HTTPPort)
		log.Info("endpoints:")
		log.Info("  POST /v1/users, /v1/admins, /v1/sessions")
		log.Info("  GET/POST /v1/surveys")
		log.Info("  GET/DELETE /v1/surveys/{id}")
		log.Info("  POST/GET /v1/surveys/{id}/responses")
		log.Info("  GET  /v1/surveys/{id}/results")
		log.Info("  DELETE /v1/responses/{id}")
		log.Info("  WS   /v1/ws/surveys/{id}?token=")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		log.Errorf("close: %v", err)
	}

	log.Info("server exited")
}
