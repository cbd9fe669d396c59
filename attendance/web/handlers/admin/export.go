package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/report"
	"timekeeper.app/timekeeper/attendance/web/common"
)

func (ep *Endpoint) Export(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	content, err := report.Generate(c.Request.Context(), report.Services{
		Users:       ep.base.Users,
		Offices:     ep.base.Offices,
		TimeEntries: ep.base.TimeEntries,
		Statistics:  ep.base.Statistics,
		Attendance:  ep.base.Attendance,
	}, dateRange, ep.base.Location)
	if err != nil {
		common.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.FileName(dateRange)))
	c.Data(http.StatusOK, report.ContentType, content)
}
