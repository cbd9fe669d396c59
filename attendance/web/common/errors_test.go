package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/attendance/core"
)

func TestErrorStatus(t *testing.T) {
	recordID := uuid.New()

	tests := []struct {
		name     string
		err      error
		status   int
		message  string
		recordID bool
	}{
		{"Not found", &core.Error{Kind: core.ErrNotFound, Message: "user not found"}, http.StatusNotFound, "user not found", false},
		{"Invalid state", &core.Error{Kind: core.ErrInvalidState, Message: "already checked out for today"}, http.StatusConflict, "already checked out for today", false},
		{"Policy violation", &core.Error{Kind: core.ErrPolicyViolation, Message: "minimum work duration not met"}, http.StatusUnprocessableEntity, "minimum work duration not met", false},
		{"Forbidden", &core.Error{Kind: core.ErrForbidden, Message: "time entry belongs to another user"}, http.StatusForbidden, "time entry belongs to another user", false},
		{"Wrapped kind", fmt.Errorf("checking in: %w", &core.Error{Kind: core.ErrNotFound, Message: "office location not found"}), http.StatusNotFound, "checking in: office location not found", false},
		{"Invalid location", &core.InvalidLocationError{RecordID: recordID, Distance: 1112, AllowedRadius: 100}, http.StatusUnprocessableEntity, "", true},
		{"Unknown", errors.New("connection refused"), http.StatusInternalServerError, "internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			if tt.recordID {
				require.NotNil(t, body.RecordID)
				assert.Equal(t, recordID.String(), *body.RecordID)
				return
			}
			assert.Nil(t, body.RecordID)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
