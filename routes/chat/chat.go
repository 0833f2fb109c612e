package chat

import (
	"getmait/controllers"
	"getmait/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPublic registers the session handshake (no token yet).
func RegisterPublic(r *gin.Engine, d controllers.Deps) {
	r.POST("/api/chat/session", middleware.RateLimit(), controllers.OpenSession(d))
}

// RegisterProtected registers the token-authenticated chat routes.
func RegisterProtected(g *gin.RouterGroup, d controllers.Deps) {
	g.GET("/api/chat/session", controllers.GetSession(d))
	g.POST("/api/chat/messages", middleware.RateLimit(), controllers.SendMessage(d))
}
