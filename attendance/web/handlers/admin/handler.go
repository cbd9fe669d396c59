package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/web/common"
	"timekeeper.app/timekeeper/attendance/web/handlers/attendance"
	web "timekeeper.app/timekeeper/web/common"
	"timekeeper.app/timekeeper/web/middlewares"
)

type Endpoint struct {
	base *common.Handler
}

// Register mounts the admin routes. Every route requires the ADMIN role.
func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	g := r.Group("/admin", middlewares.RequireRole(string(model.RoleAdmin)))

	g.GET("/attendance", endpoint.AllAttendance)
	g.GET("/attendance/office/:officeId", endpoint.AttendanceByOffice)
	g.POST("/attendance/force-checkout/:userId", endpoint.ForceCheckOut)

	g.GET("/stats/users/:userId", endpoint.UserStats)
	g.GET("/stats/department", endpoint.DepartmentStats)
	g.GET("/statistics", endpoint.Statistics)
	g.GET("/users/:userId/statistics", endpoint.UserStatistics)

	g.GET("/users", endpoint.ListUsers)
	g.PUT("/users/:userId/role", endpoint.UpdateRole)

	g.GET("/offices", endpoint.ListOffices)
	g.POST("/offices", endpoint.CreateOffice)

	g.GET("/export", endpoint.Export)
}

func idParam(c *gin.Context, name string) (int32, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid "+name))
		return 0, false
	}
	return int32(id), true
}

func (ep *Endpoint) AllAttendance(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	records, err := ep.base.Attendance.AllRecords(c.Request.Context(), dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(attendance.NewRecordDTOs(records), int64(len(records))))
}

func (ep *Endpoint) AttendanceByOffice(c *gin.Context) {
	officeID, ok := idParam(c, "officeId")
	if !ok {
		return
	}
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	records, err := ep.base.Attendance.RecordsByOffice(c.Request.Context(), officeID, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(attendance.NewRecordDTOs(records), int64(len(records))))
}

func (ep *Endpoint) ForceCheckOut(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	var body attendance.CheckOutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return
	}

	identity := ep.base.Identity(c)
	record, err := ep.base.Attendance.ForceCheckOut(c.Request.Context(), identity.Email, userID, core.CheckOutRequest{
		Latitude:  *body.Latitude,
		Longitude: *body.Longitude,
		Notes:     body.Notes,
	}, ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(attendance.NewRecordDTO(*record)))
}
