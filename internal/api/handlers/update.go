package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/internal/records"
	"github.com/admin-panel-kit/attachment-service/internal/services"
)

// Update replaces the content behind an existing record. Only available
// with local storage.
func (h *FileHandler) Update(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		fail(c, http.StatusBadRequest, "id is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "no file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "failed to open uploaded file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	record, err := h.svc.Replace(c.Request.Context(), id, content, fileHeader.Filename)
	switch {
	case errors.Is(err, services.ErrReplaceRemote):
		fail(c, http.StatusBadRequest, "cloud storage does not support this operation")
		return
	case errors.Is(err, records.ErrNotFound):
		fail(c, http.StatusNotFound, "file not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "replace failed: "+err.Error())
		return
	}

	success(c, "upload succeeded", h.svc.ResolveURL(record))
}
