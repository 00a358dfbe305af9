package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/ordersource"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
	"github.com/AcebergChristian/jushuitan-sub000/internal/service"
	"github.com/AcebergChristian/jushuitan-sub000/internal/synclock"
	"github.com/AcebergChristian/jushuitan-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// Clock resolves request dates in the business time zone
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func (k Clock) loc() *time.Location {
	if k.Location == nil {
		return time.Local
	}
	return k.Location
}

func (k Clock) today() time.Time {
	now := time.Now
	if k.Now != nil {
		now = k.Now
	}
	start, _ := reconcile.DayBounds(now().In(k.loc()))
	return start
}

// Day parses a YYYY-MM-DD value; an empty value means today
func (k Clock) Day(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return k.today(), nil
	}
	d, err := reconcile.ParseDay(value, k.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", service.ErrInvalidInput, field)
	}
	return d, nil
}

// Window reads the optional start_date/end_date query pair as an inclusive
// range of whole days. Nil means no filter.
func (k Clock) Window(c *gin.Context) (*repository.TimeWindow, error) {
	startRaw, endRaw := c.Query("start_date"), c.Query("end_date")
	if startRaw == "" && endRaw == "" {
		return nil, nil
	}
	window := &repository.TimeWindow{
		Start: time.Date(1970, 1, 1, 0, 0, 0, 0, k.loc()),
		End:   time.Date(9999, 12, 31, 23, 59, 59, 0, k.loc()),
	}
	if startRaw != "" {
		d, err := k.Day("start_date", startRaw)
		if err != nil {
			return nil, err
		}
		window.Start = d
	}
	if endRaw != "" {
		d, err := k.Day("end_date", endRaw)
		if err != nil {
			return nil, err
		}
		_, window.End = reconcile.DayBounds(d)
	}
	return window, nil
}

// viewer reads the identity set by middleware.RequireRole
func viewer(c *gin.Context) (service.Viewer, bool) {
	id, _ := c.Get("userID")
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		return service.Viewer{}, false
	}
	return service.Viewer{ID: idStr, Role: c.GetString("userRole")}, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, synclock.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, ordersource.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope. Unclassified errors are logged through
// c.Error and reported without detail.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, response.Error(status, msg))
}

// record writes an audit entry for the current caller. Failures are attached
// to the request and do not change the response.
func record(c *gin.Context, audit service.AuditService, entry service.AuditEntry) {
	if audit == nil {
		return
	}
	if v, ok := viewer(c); ok {
		entry.ActorID = v.ID
	}
	if err := audit.Record(c.Request.Context(), entry); err != nil {
		_ = c.Error(err)
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
}
