// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"claimcipher/internal/http/handlers"
	"claimcipher/internal/http/middleware"
	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/modules/route"
)

func NewRouter(
	firmService *firm.Service,
	mileageService *mileage.Service,
	routeService *route.Service,
	log *zap.Logger,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log), middleware.CORS(corsOrigins))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "path": c.Request.URL.Path})
	})

	r.GET("/health", handlers.Health)

	api := r.Group("/api")

	firmHandler := handlers.NewFirmHandler(firmService)
	firms := api.Group("/firms")
	firms.GET("", firmHandler.List)
	firms.POST("", firmHandler.Create)
	firms.GET("/:id", firmHandler.Get)
	firms.PUT("/:id", firmHandler.Update)
	firms.DELETE("/:id", firmHandler.Delete)

	mileageHandler := handlers.NewMileageHandler(mileageService)
	miles := api.Group("/mileage")
	miles.POST("/calculate", mileageHandler.Calculate)
	miles.GET("/trips", mileageHandler.Trips)
	miles.POST("/import", mileageHandler.Import)

	routeHandler := handlers.NewRouteHandler(routeService)
	routes := api.Group("/routes")
	routes.POST("/split", routeHandler.Split)
	routes.POST("/plan", routeHandler.Plan)
	routes.POST("/export", routeHandler.Export)

	return r
}
