package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/internal/records"
)

// Index returns the paginated admin listing. Removed rows never appear.
func (h *FileHandler) Index(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if current < 1 {
		current = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filters := records.ListFilters{
		Name: c.Query("name"),
	}
	if s := c.Query("status"); s != "" {
		if status, err := strconv.Atoi(s); err == nil {
			filters.Status = status
		}
	}
	if d := c.Query("dateStart"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			filters.DateStart = t
		}
	}
	if d := c.Query("dateEnd"); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			// Inclusive end of day.
			filters.DateEnd = t.Add(24*time.Hour - time.Second)
		}
	}

	files, total, err := h.svc.List(c.Request.Context(), filters, current, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list files: "+err.Error())
		return
	}

	lists := make([]gin.H, 0, len(files))
	for _, record := range files {
		lists = append(lists, gin.H{
			"id":         record.ID,
			"name":       record.Name,
			"size":       fmt.Sprintf("%.2fkb", float64(record.SizeBytes)/1024),
			"url":        h.svc.ResolveURL(record),
			"status":     record.Status,
			"sort":       record.SortOrder,
			"created_at": record.CreatedAt,
		})
	}

	success(c, "ok", gin.H{
		"lists": lists,
		"pagination": gin.H{
			"defaultCurrent": 1,
			"current":        current,
			"pageSize":       pageSize,
			"total":          total,
		},
	})
}
