package helper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/store/memory"
)

var loc = time.FixedZone("AEST", 10*60*60)

const punches = `ID,Email,Timestamp,Location
1,Jane@Example.com,2024-01-14T23:00:00+00:00,Office
2,jane@example.com,2024-01-15T07:30:00+00:00,Office
3,jane@example.com,2024-01-15T03:00:00+00:00,Office
4,bob@example.com,2024-01-15T22:00:00+00:00,Remote
`

func TestParsePunchCSV(t *testing.T) {
	records, err := ParsePunchCSV(strings.NewReader(punches), loc)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "jane@example.com", records[0].Email)
	assert.Equal(t, "2024-01-15", records[0].Date, "23:00 UTC is the next morning in Brisbane")
	assert.Equal(t, "Remote", records[3].Location)
	assert.Equal(t, "2024-01-16", records[3].Date)
}

func TestParsePunchCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"Short row", "ID,Email,Timestamp,Location\n1,jane@example.com,2024-01-15T09:00:00Z\n"},
		{"Bad id", "ID,Email,Timestamp,Location\nx,jane@example.com,2024-01-15T09:00:00Z,Office\n"},
		{"Bad timestamp", "ID,Email,Timestamp,Location\n1,jane@example.com,15/01/2024,Office\n"},
		{"Missing email", "ID,Email,Timestamp,Location\n1, ,2024-01-15T09:00:00Z,Office\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePunchCSV(strings.NewReader(tt.csv), loc)
			assert.Error(t, err)
		})
	}
}

func TestGroupPunches(t *testing.T) {
	records, err := ParsePunchCSV(strings.NewReader(punches), loc)
	require.NoError(t, err)

	days := GroupPunches(records)
	require.Len(t, days, 2)

	assert.Equal(t, "jane@example.com", days[0].Email)
	assert.Equal(t, "2024-01-15", days[0].Date)
	assert.Len(t, days[0].Punches, 3)
	assert.Equal(t, 9, days[0].From.Hour())
	assert.Equal(t, 17, days[0].To.Hour())
	assert.InDelta(t, 8.5, days[0].Hours(), 1e-9)

	assert.Equal(t, "bob@example.com", days[1].Email)
	assert.Equal(t, 0.0, days[1].Hours())
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveUser(ctx, &model.User{Email: "jane@example.com", Role: model.RoleEmployee}))
	svc := core.NewTimeEntryService(store, loc)
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)

	result, err := Import(ctx, svc, strings.NewReader(punches), loc, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Failed, 1, "bob is not a user")
	assert.Contains(t, result.Failed[0], "bob@example.com")

	entries, err := svc.ListTimeEntries(ctx, "jane@example.com", core.DateRange{Start: now.AddDate(0, 0, -30), End: now})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.InDelta(t, 8.5, entries[0].Hours, 1e-9)

	result, err = Import(ctx, svc, strings.NewReader(punches), loc, now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "imported 0, skipped 1, failed 1", result.String())
}

func TestParsePunchCSVLocalTimestamps(t *testing.T) {
	records, err := ParsePunchCSV(strings.NewReader("ID,Email,Timestamp,Location\n1,jane@example.com,2024-01-15 23:30:00,Office\n"), loc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-15", records[0].Date)
	assert.Equal(t, 23, records[0].Timestamp.Hour())
}
