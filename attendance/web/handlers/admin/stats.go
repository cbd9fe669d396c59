package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/web/common"
	web "timekeeper.app/timekeeper/web/common"
)

func (ep *Endpoint) UserStats(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	stats, err := ep.base.Statistics.UserStats(c.Request.Context(), userID, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

func (ep *Endpoint) DepartmentStats(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	stats, err := ep.base.Statistics.DepartmentStats(c.Request.Context(), dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

func (ep *Endpoint) Statistics(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	stats, err := ep.base.Statistics.AdminStatistics(c.Request.Context(), dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}

func (ep *Endpoint) UserStatistics(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}
	stats, err := ep.base.Statistics.UserStatistics(c.Request.Context(), userID, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(stats))
}
