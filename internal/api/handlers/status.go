package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/internal/models"
	"github.com/admin-panel-kit/attachment-service/internal/services"
)

type changeStatusRequest struct {
	// ID accepts a single id or an array of ids.
	ID     any `json:"id"`
	Status int `json:"status"`
}

func normalizeIDs(raw any) []string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				ids = append(ids, s)
			}
		}
		return ids
	default:
		return nil
	}
}

// ChangeStatus transitions one or more records. Status -1 deletes the
// backing blobs before the batch update; 1 and 2 are metadata-only.
func (h *FileHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := normalizeIDs(req.ID)
	if len(ids) == 0 || req.Status == 0 {
		fail(c, http.StatusBadRequest, "id and status are required")
		return
	}

	ctx := c.Request.Context()

	if req.Status == models.StatusRemoved {
		count, failures, err := h.svc.Remove(ctx, ids)
		if err != nil {
			fail(c, http.StatusInternalServerError, "removal failed: "+err.Error())
			return
		}
		if len(failures) > 0 {
			failedIDs := make([]string, 0, len(failures))
			for _, f := range failures {
				failedIDs = append(failedIDs, f.ID)
			}
			success(c, fmt.Sprintf("removed %d records, blob delete failed for %v", count, failedIDs), gin.H{
				"count":      count,
				"failed_ids": failedIDs,
			})
			return
		}
		success(c, "operation succeeded", gin.H{"count": count})
		return
	}

	count, err := h.svc.SetStatus(ctx, ids, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "status update failed: "+err.Error())
		return
	}
	success(c, "operation succeeded", gin.H{"count": count})
}
