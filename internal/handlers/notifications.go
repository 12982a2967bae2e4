package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

type notificationsResponse struct {
	Status        int                         `json:"status"`
	Count         int                         `json:"count"`
	Notifications []models.NotificationRecord `json:"notifications"`
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List dispatched notifications
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         app
// @Produce      json
// @Param        Plant-Id  header  string  true   "Plant identifier"
// @Param        from      query   string  false  "Start of range"  example(2025-08-01)
// @Param        to        query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        reason    query   string  false  "Notification reason"  Enums(WATER_LEVEL_LOW,SOIL_MOISTURE_LOW)
// @Success      200  {object}  notificationsResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /Notifications [get]
func (h *Handler) getNotifications(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, errFromInvalid)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, errToInvalid)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	plantID := plantIDFrom(c)

	records, err := h.services.List(c.Request.Context(), plantID, service.NotificationFilter{
		From:   from,
		To:     to,
		Reason: c.Query("reason"),
	})
	if err != nil {
		h.respondError(c, err, "notifications_list_failed", "plant_id", plantID, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, notificationsResponse{
		Status:        http.StatusOK,
		Count:         len(records),
		Notifications: records,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
