package api

import (
	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/internal/api/handlers"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, PATCH, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// RegisterRoutes wires the admin file endpoints. authRequired may be nil
// when authentication is disabled (local development).
func RegisterRoutes(r *gin.Engine, h *handlers.FileHandler, authRequired gin.HandlerFunc) {
	r.Use(corsMiddleware())

	api := r.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	admin := api.Group("/admin/file")
	if authRequired != nil {
		admin.Use(authRequired)
	}
	admin.POST("/upload", h.Upload)             // ingest an attachment
	admin.GET("/index", h.Index)                // paginated listing
	admin.POST("/changeStatus", h.ChangeStatus) // enable/disable/remove, scalar or array id
	admin.POST("/update", h.Update)             // content replace (local only)
	admin.GET("/download", h.Download)          // redirect to resolved URL
}
