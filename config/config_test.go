package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "DB_MAX_CONNECTIONS", "TIMEZONE", "SWEEP_SCHEDULE", "SIGNING_SECRET", "DSN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8090", cfg.Addr)
	assert.Equal(t, 10, cfg.DBMaxConnections)
	assert.Equal(t, "Australia/Brisbane", cfg.Location.String())
	assert.Equal(t, "0 2 * * *", cfg.SweepSchedule)
	assert.Empty(t, cfg.SigningSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("DB_MAX_CONNECTIONS", "25")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SIGNING_SECRET", "c2VjcmV0") // "secret"

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 25, cfg.DBMaxConnections)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, []byte("secret"), cfg.SigningSecret)
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "many")
	t.Setenv("SIGNING_SECRET", "")
	t.Setenv("TIMEZONE", "UTC")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DBMaxConnections)

	t.Setenv("SIGNING_SECRET", "%%%")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SIGNING_SECRET", "")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	cfg := Config{DSN: "app@tcp(localhost)/tk", SigningSecret: []byte("k")}
	assert.NoError(t, cfg.Require("DSN", "SIGNING_SECRET"))

	err := cfg.Require("SIGNING_SECRET", "REPORT_BUCKET", "SLACK_BOT_TOKEN")
	assert.EqualError(t, err, "missing env: REPORT_BUCKET, SLACK_BOT_TOKEN")
}

func TestResolveDSN(t *testing.T) {
	dsn, err := Config{DSN: "app@tcp(localhost)/tk"}.ResolveDSN(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "app@tcp(localhost)/tk", dsn)

	_, err = Config{}.ResolveDSN(context.Background())
	assert.EqualError(t, err, "missing env: DSN or DB_CONFIG_ENTRY")
}
