package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminRequired gates admin endpoints behind an active session cookie.
func AdminRequired(c *gin.Context) {
	sess := sessions.Default(c)
	adminID, ok := sess.Get("admin_id").(uint)
	if !ok || adminID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		c.Abort()
		return
	}

	c.Set("admin_id", adminID)
	c.Next()
}
