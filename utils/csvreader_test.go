package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	csvData := `email,timestamp,location
# exported from the door system
jane@example.com, 2024-01-15T09:00:00Z,Office
bob@example.com,2024-01-15T09:10:00Z`

	got, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"email", "timestamp", "location"},
		{"jane@example.com", "2024-01-15T09:00:00Z", "Office"},
		{"bob@example.com", "2024-01-15T09:10:00Z"},
	}, got)
}

func TestParseCSVUnterminatedQuote(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("email\n\"jane@example.com\n"))
	assert.ErrorContains(t, err, "failed to parse csv")
}
