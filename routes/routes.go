package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"getmait/controllers"
	"getmait/middleware"

	chatRoutes "getmait/routes/chat"
	storefrontRoutes "getmait/routes/storefront"
	websocketRoutes "getmait/routes/websocket"
)

func RegisterRoutes(r *gin.Engine, d controllers.Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Getmait storefront service running"})
	})

	storefrontRoutes.Register(r, d)
	websocketRoutes.Register(r, d)
	chatRoutes.RegisterPublic(r, d)

	protected := r.Group("/")
	protected.Use(middleware.SessionAuth(d.Sessions))
	chatRoutes.RegisterProtected(protected, d)
}
