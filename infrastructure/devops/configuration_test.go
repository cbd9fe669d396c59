package devops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
- name: timekeeper
  host: db.internal
  username: app
  password: secret
- name: Reporting
  host: pg.internal:6432
  username: report
  password: pw
  driver: postgres
`

func TestParseAndFindDB(t *testing.T) {
	entries, err := ParseDBConfig(sample)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entry, ok := FindDB(entries, "reporting")
	require.True(t, ok)
	assert.Equal(t, "pg.internal:6432", entry.Host)

	_, ok = FindDB(entries, "missing")
	assert.False(t, ok)

	_, err = ParseDBConfig("::not yaml")
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name     string
		entry    DBEntry
		expected string
	}{
		{
			name:     "MySQL default port",
			entry:    DBEntry{Host: "db.internal", Username: "app", Password: "secret"},
			expected: "app:secret@tcp(db.internal:3306)/timekeeper?parseTime=true&loc=UTC",
		},
		{
			name:     "MySQL explicit port",
			entry:    DBEntry{Host: "db.internal:3307", Username: "app", Password: "secret"},
			expected: "app:secret@tcp(db.internal:3307)/timekeeper?parseTime=true&loc=UTC",
		},
		{
			name:     "Postgres",
			entry:    DBEntry{Host: "pg.internal", Username: "report", Password: "pw", Driver: "postgres"},
			expected: "postgres://report:pw@pg.internal:5432/timekeeper?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.GetDSN("timekeeper"))
		})
	}
}
