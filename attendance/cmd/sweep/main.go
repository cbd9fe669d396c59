package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/config"
)

// Closes every session left open on a previous day, as the nightly job does.
func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Open(ctx, cfg, nil, false)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	closed, err := a.Attendance.CloseStaleSessions(ctx, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[INFO] closed %d stale session(s)\n", closed)
}
