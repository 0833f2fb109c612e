package websocket

import (
	"getmait/controllers"
	"getmait/middleware"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, d controllers.Deps) {
	r.GET("/ws/chat", middleware.RateLimit(), controllers.ChatWS(d))
}
