package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/internal/records"
)

// Download redirects to the resolved URL of the attachment.
func (h *FileHandler) Download(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}

	record, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, records.ErrNotFound) {
		fail(c, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load file: "+err.Error())
		return
	}

	c.Redirect(http.StatusFound, h.svc.ResolveURL(record))
}
