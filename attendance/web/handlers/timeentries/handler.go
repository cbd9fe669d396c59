package timeentries

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/web/common"
	web "timekeeper.app/timekeeper/web/common"
)

type Endpoint struct {
	base *common.Handler
}

func Register(r *gin.RouterGroup, h *common.Handler) {
	endpoint := &Endpoint{base: h}
	r.POST("/time-entries", endpoint.Create)
	r.PUT("/time-entries/:id", endpoint.Update)
	r.GET("/time-entries", endpoint.List)
	r.GET("/time-entries/graph", endpoint.Graph)
	r.GET("/time-entries/monthly-total/:year/:month", endpoint.MonthlyTotal)
}

type TimeEntryDTO struct {
	Date        *web.DateOnly `json:"date" binding:"required"`
	Hours       *float64      `json:"hours" binding:"required"`
	Description string        `json:"description" binding:"max=2000"`
}

func bindEntry(c *gin.Context) (*TimeEntryDTO, bool) {
	var body TimeEntryDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		common.BadRequest(c, err)
		return nil, false
	}
	if body.Date.IsZero() {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Field 'date' is required"))
		return nil, false
	}
	return &body, true
}

func (d TimeEntryDTO) request() core.TimeEntryRequest {
	return core.TimeEntryRequest{Date: d.Date.Time, Hours: *d.Hours, Description: d.Description}
}

type EntryResponse struct {
	ID          uuid.UUID    `json:"id"`
	Date        web.DateOnly `json:"date"`
	Hours       float64      `json:"hours"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func NewEntryResponse(e model.TimeEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Date:        web.NewDateOnly(e.Day()),
		Hours:       e.Hours,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (ep *Endpoint) Create(c *gin.Context) {
	body, ok := bindEntry(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	entry, err := ep.base.TimeEntries.LogTime(c.Request.Context(), identity.Email, body.request(), ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(NewEntryResponse(*entry)))
}

func (ep *Endpoint) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	body, ok := bindEntry(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	entry, err := ep.base.TimeEntries.UpdateTimeEntry(c.Request.Context(), identity.Email, id, body.request(), ep.base.Clock())
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(NewEntryResponse(*entry)))
}

func (ep *Endpoint) List(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	entries, err := ep.base.TimeEntries.ListTimeEntries(c.Request.Context(), identity.Email, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e))
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(out, int64(len(out))))
}

func (ep *Endpoint) Graph(c *gin.Context) {
	dateRange, ok := common.DateRange(c)
	if !ok {
		return
	}

	identity := ep.base.Identity(c)
	aggregates, err := ep.base.TimeEntries.TimeEntriesForGraph(c.Request.Context(), identity.Email, dateRange)
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(aggregates))
}

func (ep *Endpoint) MonthlyTotal(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid month"))
		return
	}

	identity := ep.base.Identity(c)
	total, err := ep.base.TimeEntries.MonthlyTotal(c.Request.Context(), identity.Email, year, time.Month(month))
	if err != nil {
		common.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"total": total}))
}
