package storefront

import (
	"getmait/controllers"

	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine, d controllers.Deps) {
	r.GET("/api/storefront", controllers.Storefront(d))
}
