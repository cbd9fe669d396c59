package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/lambdas/common"
)

func TestResolveRange(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Brisbane")
	require.NoError(t, err)
	// Wednesday 17 Jan 2024, 08:00 in Brisbane
	now := time.Date(2024, 1, 16, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		event     ReportEvent
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "default is yesterday", event: ReportEvent{}, wantStart: "2024-01-16", wantEnd: "2024-01-16"},
		{name: "previous week", event: ReportEvent{Period: "WEEK"}, wantStart: "2024-01-08", wantEnd: "2024-01-14"},
		{name: "explicit range", event: ReportEvent{StartDate: "2024-01-01", EndDate: "2024-01-31"}, wantStart: "2024-01-01", wantEnd: "2024-01-31"},
		{name: "start only", event: ReportEvent{StartDate: "2024-01-05"}, wantStart: "2024-01-05", wantEnd: "2024-01-05"},
		{name: "end before start", event: ReportEvent{StartDate: "2024-01-05", EndDate: "2024-01-04"}, wantErr: true},
		{name: "bad date", event: ReportEvent{StartDate: "05/01/2024"}, wantErr: true},
		{name: "unknown period", event: ReportEvent{Period: "fortnight"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveRange(tt.event, now, loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, r.End.Format(time.DateOnly))
		})
	}
}

func TestFromBedrock(t *testing.T) {
	e := FromBedrock(&common.BedrockEvent{
		ActionGroup: "reports",
		Parameters: []common.BedrockParameter{
			{Name: "period", Value: "week"},
			{Name: "dryrun", Value: "TRUE"},
		},
	})
	assert.Equal(t, PeriodWeek, e.Period)
	assert.True(t, e.DryRun)
	assert.Empty(t, e.StartDate)
}
