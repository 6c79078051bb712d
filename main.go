package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-chat-api/api/handlers"
	"github.com/linesmerrill/legal-chat-api/api/scheduler"
	"github.com/linesmerrill/legal-chat-api/config"
)

func main() {
	// a missing .env is fine, the environment wins either way
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database and router
		zap.S().Fatalw("failed to initialize legal-chat-api", "error", err)
	}

	jobs := scheduler.NewScheduler(a.Chat, a.Metrics, a.Config.StatsSchedule)
	if err := jobs.Start(); err != nil {
		zap.S().Warnw("stats job disabled", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("legal-chat-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("http server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	jobs.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Warnw("http server shutdown", "error", err)
	}
	a.Close(ctx)
	_ = zap.L().Sync()
}
