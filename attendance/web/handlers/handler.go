package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/web/common"
	"timekeeper.app/timekeeper/attendance/web/handlers/admin"
	"timekeeper.app/timekeeper/attendance/web/handlers/attendance"
	"timekeeper.app/timekeeper/attendance/web/handlers/calendar"
	"timekeeper.app/timekeeper/attendance/web/handlers/timeentries"
	web "timekeeper.app/timekeeper/web/common"
	"timekeeper.app/timekeeper/web/middlewares"
)

// NewRouter builds the HTTP API. Routes under /api/v1 need a bearer token signed with jwtSecret.
func NewRouter(h *common.Handler, jwtSecret []byte) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret, common.SessionValidator(h.Users)))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			c.JSON(http.StatusOK, web.NewSuccessResponse(h.Identity(c).Identity))
		})
		attendance.Register(protected, h)
		timeentries.Register(protected, h)
		calendar.Register(protected, h)
		admin.Register(protected, h)
	}

	return r
}
