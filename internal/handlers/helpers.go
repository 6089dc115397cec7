package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"salescrm/internal/analytics"
	"salescrm/internal/domain"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the domain taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsKind(err, domain.KindNotFound):
		status = http.StatusNotFound
	case domain.IsKind(err, domain.KindAlreadyConverted):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

const dateLayout = "2006-01-02"

// parseFilter reads from/to/owner/source query params. Missing dates default
// to the last windowDays days, matching the dashboard's default view.
func parseFilter(c *gin.Context, windowDays int) (analytics.Filter, bool) {
	now := time.Now().UTC()
	f := analytics.Filter{
		From:   now.AddDate(0, 0, -windowDays).Truncate(24 * time.Hour),
		To:     now.Truncate(24 * time.Hour),
		Owner:  c.Query("owner"),
		Source: c.Query("source"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return f, false
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return f, false
		}
		f.To = t
	}
	return f, true
}
