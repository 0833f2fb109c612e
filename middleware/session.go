package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"getmait/pkg/session"
)

const ContextSessionIDKey = "current_session_id"

// SessionAuth validates the widget's bearer session token and puts the
// session id in the request context. Whether the session still exists is the
// handler's concern (it can have expired between requests).
func SessionAuth(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization header"})
			return
		}

		sid, err := store.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid session token"})
			return
		}

		c.Set(ContextSessionIDKey, sid)
		c.Next()
	}
}
