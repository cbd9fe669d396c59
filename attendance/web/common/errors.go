package common

import (
	"errors"
	"net/http"

	"timekeeper.app/timekeeper/attendance/core"
	web "timekeeper.app/timekeeper/web/common"
)

// ErrorStatus maps a service error to its HTTP status and response body.
// Errors without a domain kind are reported as 500 without their details.
func ErrorStatus(err error) (int, *web.ErrorResponse) {
	var invalidLocation *core.InvalidLocationError
	if errors.As(err, &invalidLocation) {
		id := invalidLocation.RecordID.String()
		return http.StatusUnprocessableEntity, &web.ErrorResponse{Message: invalidLocation.Error(), RecordID: &id}
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, web.NewErrorResponse(err.Error())
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict, web.NewErrorResponse(err.Error())
	case errors.Is(err, core.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, web.NewErrorResponse(err.Error())
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, web.NewErrorResponse(err.Error())
	}
	return http.StatusInternalServerError, web.NewErrorResponse("internal server error")
}
