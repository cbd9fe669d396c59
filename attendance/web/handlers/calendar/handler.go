package calendar

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/web/common"
	web "timekeeper.app/timekeeper/web/common"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.GET("/calendar/events", endpoint.Events)
}

// Events lists the caller's meetings and time entries between startDate and endDate.
func (ep *Endpoint) Events(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	events, err := ep.base.Calendar.CalendarEvents(c.Request.Context(), identity.Email, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(events, int64(len(events))))
}
