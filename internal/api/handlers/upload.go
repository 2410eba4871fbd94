package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 200 << 20 // 200 MB

// Upload ingests one attachment from a multipart form. Re-uploading the same
// content under the same name returns the existing record.
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "no file provided")
		return
	}
	if fileHeader.Size > maxUploadSize {
		fail(c, http.StatusBadRequest, "file too large: "+fileHeader.Filename)
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

	ownerType, ownerID := adminIdentity(c)

	record, err := h.svc.Ingest(c.Request.Context(), content, fileHeader.Filename, ownerType, ownerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "upload failed: "+err.Error())
		return
	}

	success(c, "upload succeeded", gin.H{
		"id":   record.ID,
		"name": record.Name,
		"url":  h.svc.ResolveURL(record),
		"size": record.SizeBytes,
	})
}
