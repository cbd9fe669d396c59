package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/config"
	"timekeeper.app/timekeeper/security"
)

func main() {
	email := flag.String("email", "", "email of the user the token is issued for")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()
	if *email == "" {
		log.Fatal("-email is required")
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Require("SIGNING_SECRET"); err != nil {
		log.Fatal(err)
	}

	a, err := app.Open(ctx, cfg, nil, false)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	user, err := a.Users.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatal(err)
	}
	if user == nil {
		log.Fatalf("user %s not found", *email)
	}

	token, err := security.CreateIdentityToken(security.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}, cfg.SigningSecret, *ttl, time.Now())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
