package handlers

import (
	"github.com/admin-panel-kit/attachment-service/internal/services"
)

// FileHandler serves the admin file endpoints.
type FileHandler struct {
	svc *services.Service
}

func NewFileHandler(svc *services.Service) *FileHandler {
	return &FileHandler{svc: svc}
}
