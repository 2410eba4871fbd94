package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The admin frontend expects every response in a {status, msg, data}
// envelope.

func success(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"msg":    msg,
		"data":   data,
	})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"status": "error",
		"msg":    msg,
	})
}

// adminIdentity returns the uploading principal set by the auth middleware.
// Falls back to the root admin when auth is disabled (local development).
func adminIdentity(c *gin.Context) (ownerType, ownerID string) {
	ownerType = "ADMINID"
	ownerID = "0"
	if v, ok := c.Get("admin_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			ownerID = s
		}
	}
	return ownerType, ownerID
}
