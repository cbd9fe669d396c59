package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/web/common"
	web "timekeeper.app/timekeeper/web/common"
)

type UpdateRoleDTO struct {
	Role model.Role `json:"role" binding:"required"`
}

type RoleChangeResponse struct {
	User model.User `json:"user"`
	// Sessions of the user issued before this instant must sign in again.
	SessionsRevokedBefore time.Time `json:"sessionsRevokedBefore"`
}

type OfficeDTO struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Address       string   `json:"address" binding:"max=500"`
	Latitude      *float64 `json:"latitude" binding:"required"`
	Longitude     *float64 `json:"longitude" binding:"required"`
	AllowedRadius float64  `json:"allowedRadius"`
	IsActive      *bool    `json:"isActive"`
}

func (ep *Endpoint) ListUsers(c *gin.Context) {
	users, err := ep.base.Users.ListUsers(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(users, int64(len(users))))
}

func (ep *Endpoint) UpdateRole(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	var body UpdateRoleDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return
	}

	user, invalidation, err := ep.base.Users.UpdateUserRole(c.Request.Context(), userID, body.Role, ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(RoleChangeResponse{User: *user, SessionsRevokedBefore: invalidation.IssuedBefore}))
}

func (ep *Endpoint) ListOffices(c *gin.Context) {
	offices, err := ep.base.Offices.ListOffices(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(offices, int64(len(offices))))
}

func (ep *Endpoint) CreateOffice(c *gin.Context) {
	var body OfficeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return
	}

	office := &model.OfficeLocation{
		Name:          body.Name,
		Address:       body.Address,
		Latitude:      *body.Latitude,
		Longitude:     *body.Longitude,
		AllowedRadius: body.AllowedRadius,
		IsActive:      body.IsActive == nil || *body.IsActive,
	}
	if err := ep.base.Offices.CreateOffice(c.Request.Context(), office); err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(office))
}
