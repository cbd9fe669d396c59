package common

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/security"
	web "timekeeper.app/timekeeper/web/common"
	"timekeeper.app/timekeeper/web/middlewares"
)

// Handler carries the services shared by every endpoint.
type Handler struct {
	Attendance  *core.AttendanceService
	Statistics  *core.StatisticsService
	TimeEntries *core.TimeEntryService
	Users       *core.UserService
	Offices     *core.OfficeService
	Calendar    *core.CalendarService
	Location    *time.Location
	// Now is overridden by tests.
	Now func() time.Time
}

func (h *Handler) Clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Identity returns the caller of an authenticated route.
func (h *Handler) Identity(c *gin.Context) *security.IdentityClaims {
	claims, _ := middlewares.GetIdentity(c)
	return claims
}

// Fail writes err with the status of its kind.
func Fail(c *gin.Context, err error) {
	status, body := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		fmt.Printf("[ERROR] %s %s: %v\n", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, body)
}

// BadRequest reports a binding or parameter error.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
}

type RangeParams struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// DateRange binds the startDate/endDate query parameters.
func DateRange(c *gin.Context) (core.DateRange, bool) {
	var params RangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		BadRequest(c, err)
		return core.DateRange{}, false
	}
	var start, end web.DateOnly
	if err := start.Parse(params.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Field 'startDate' "+err.Error()))
		return core.DateRange{}, false
	}
	if err := end.Parse(params.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Field 'endDate' "+err.Error()))
		return core.DateRange{}, false
	}
	if end.Before(start.Time) {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("endDate must not be before startDate"))
		return core.DateRange{}, false
	}
	return core.DateRange{Start: start.Time, End: end.Time}, true
}

// SessionValidator rejects tokens of deleted users and tokens issued before the user's watermark.
func SessionValidator(users *core.UserService) middlewares.SessionValidator {
	return func(ctx context.Context, claims *security.IdentityClaims) (bool, error) {
		user, err := users.FindByEmail(ctx, claims.Email)
		if err != nil {
			return false, err
		}
		if user == nil {
			return false, nil
		}
		if user.TokensValidAfter != nil && claims.IssuedBefore(*user.TokensValidAfter) {
			return false, nil
		}
		return true, nil
	}
}
