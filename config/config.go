package config

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"timekeeper.app/timekeeper/infrastructure/devops"
)

type Config struct {
	AppEnv           string
	Addr             string
	DSN              string
	DBMaxConnections int
	DBLogLevel       string
	// SSM parameter holding the database list, used when DSN is empty.
	DBConfigParameter string
	DBConfigEntry     string
	DBName            string

	SigningSecret []byte
	Location      *time.Location

	SlackBotToken     string
	SlackInfoChannel  string
	SlackErrorChannel string
	NotifyFromEmail   string

	ReportBucket  string
	SweepSchedule string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "local"),
		Addr:              getEnv("APP_ADDR", "0.0.0.0:8090"),
		DSN:               os.Getenv("DSN"),
		DBMaxConnections:  getEnvInt("DB_MAX_CONNECTIONS", 10),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		DBConfigParameter: getEnv("DB_CONFIG_PARAMETER", "databases"),
		DBConfigEntry:     os.Getenv("DB_CONFIG_ENTRY"),
		DBName:            getEnv("DB_NAME", "timekeeper"),
		SlackBotToken:     os.Getenv("SLACK_BOT_TOKEN"),
		SlackInfoChannel:  os.Getenv("SLACK_INFO_CHANNEL"),
		SlackErrorChannel: os.Getenv("SLACK_ERROR_CHANNEL"),
		NotifyFromEmail:   os.Getenv("NOTIFY_FROM_EMAIL"),
		ReportBucket:      os.Getenv("REPORT_BUCKET"),
		SweepSchedule:     getEnv("SWEEP_SCHEDULE", "0 2 * * *"),
	}

	if raw := os.Getenv("SIGNING_SECRET"); raw != "" {
		secret, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return cfg, fmt.Errorf("SIGNING_SECRET is not valid base64: %w", err)
		}
		cfg.SigningSecret = secret
	}

	tz := getEnv("TIMEZONE", "Australia/Brisbane")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE %s: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Require reports every named setting that is empty.
func (c Config) Require(keys ...string) error {
	values := map[string]bool{
		"SIGNING_SECRET":    len(c.SigningSecret) > 0,
		"SLACK_BOT_TOKEN":   c.SlackBotToken != "",
		"NOTIFY_FROM_EMAIL": c.NotifyFromEmail != "",
		"REPORT_BUCKET":     c.ReportBucket != "",
		"DSN":               c.DSN != "" || c.DBConfigEntry != "",
	}

	missing := []string{}
	for _, key := range keys {
		if ok, known := values[key]; !known || !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.New("missing env: " + strings.Join(missing, ", "))
	}
	return nil
}

// ResolveDSN returns DSN, or builds one from the SSM database list entry DB_CONFIG_ENTRY.
func (c Config) ResolveDSN(ctx context.Context) (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if c.DBConfigEntry == "" {
		return "", errors.New("missing env: DSN or DB_CONFIG_ENTRY")
	}

	entries, err := devops.LoadDBConfig(ctx, c.DBConfigParameter)
	if err != nil {
		return "", fmt.Errorf("failed to load database config: %w", err)
	}
	entry, ok := devops.FindDB(entries, c.DBConfigEntry)
	if !ok {
		return "", fmt.Errorf("database %s not found in parameter %s", c.DBConfigEntry, c.DBConfigParameter)
	}
	return entry.GetDSN(c.DBName), nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
