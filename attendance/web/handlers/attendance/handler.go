package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/web/common"
	web "timekeeper.app/timekeeper/web/common"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.POST("/attendance/check-in", endpoint.CheckIn)
	r.POST("/attendance/check-out", endpoint.CheckOut)
	r.GET("/attendance/status", endpoint.Status)
	r.GET("/attendance/history", endpoint.History)
	r.GET("/attendance/stats/me", endpoint.MyStats)
}

func (ep *Endpoint) CheckIn(c *gin.Context) {
	var body CheckInDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return
	}

	identity := ep.base.Identity(c)
	record, err := ep.base.Attendance.CheckIn(c.Request.Context(), identity.Email, core.CheckInRequest{
		OfficeID:  body.OfficeID,
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
	}, ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(NewRecordDTO(*record)))
}

func (ep *Endpoint) CheckOut(c *gin.Context) {
	var body CheckOutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return
	}

	identity := ep.base.Identity(c)
	record, err := ep.base.Attendance.CheckOut(c.Request.Context(), identity.Email, core.CheckOutRequest{
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
		Notes:     body.Notes,
	}, ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(NewRecordDTO(*record)))
}

func (ep *Endpoint) Status(c *gin.Context) {
	identity := ep.base.Identity(c)
	status, err := ep.base.Attendance.CurrentStatus(c.Request.Context(), identity.Email, ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(status))
}

func (ep *Endpoint) History(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	records, err := ep.base.Attendance.History(c.Request.Context(), identity.Email, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(NewRecordDTOs(records), int64(len(records))))
}

func (ep *Endpoint) MyStats(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	stats, err := ep.base.Statistics.UserStatsByEmail(c.Request.Context(), identity.Email, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}
