package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/attendance/web/common"
	"timekeeper.app/timekeeper/attendance/web/handlers"
	"timekeeper.app/timekeeper/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Require("SIGNING_SECRET", "DSN"); err != nil {
		log.Fatal(err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	fmt.Printf("[INFO] env %s, timezone %s\n", cfg.AppEnv, cfg.Location)

	a, err := app.Open(ctx, cfg, app.Notifier(ctx, cfg), true)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	scheduler := cron.New(cron.WithLocation(cfg.Location))
	if _, err := scheduler.AddFunc(cfg.SweepSchedule, func() {
		closed, err := a.Attendance.CloseStaleSessions(context.Background(), time.Now())
		if err != nil {
			fmt.Printf("[ERROR] stale session sweep failed: %v\n", err)
			return
		}
		fmt.Printf("[INFO] stale session sweep closed %d session(s)\n", closed)
	}); err != nil {
		log.Fatalf("invalid SWEEP_SCHEDULE %q: %v", cfg.SweepSchedule, err)
	}
	scheduler.Start()

	r := handlers.NewRouter(&common.Handler{
		Attendance:  a.Attendance,
		Statistics:  a.Statistics,
		TimeEntries: a.TimeEntries,
		Users:       a.Users,
		Offices:     a.Offices,
		Calendar:    a.Calendar,
		Location:    cfg.Location,
	}, cfg.SigningSecret)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		fmt.Printf("[INFO] listening on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Printf("[INFO] shutting down\n")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("[ERROR] shutdown: %v\n", err)
	}
	<-scheduler.Stop().Done()
}
