package handlers

import (
	"smart_plant/internal/logger"
	"smart_plant/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// An empty corsOrigins list allows any origin.
func (h *Handler) InitRoutes(corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.welcome)
	router.GET("/health", h.health)

	// Operator endpoints
	router.POST("/admin/token", h.issueOperatorToken)
	router.POST("/RemoveEntries/confirm", h.operatorMiddleware, h.confirmRemoveEntries)

	// Device and app endpoints, all scoped by the Plant-Id header
	h.registerPlantRoutes(router)

	// The stream also accepts ?plant_id= since browsers cannot set headers on upgrade.
	router.GET("/ws", h.wsConnect)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", plantIDHeader},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func (h *Handler) registerPlantRoutes(r *gin.Engine) {
	plant := r.Group("/", h.plantIdMiddleware)
	{
		plant.POST("/AddEntry", h.addEntry)
		plant.GET("/ActuatorData", h.actuatorData)
		plant.GET("/AppBasicData", h.appBasicData)
		plant.GET("/StatisticalData", h.statisticalData)

		// Body example: {"lamp_intensity_pct":80,"water_pump_on":true}
		plant.POST("/Override", h.override)
		plant.DELETE("/RemoveOverride", h.removeOverride)

		plant.DELETE("/RemoveEntries", h.removeEntries)
		plant.POST("/BindPlantIdToken", h.bindPlantIdToken)
		plant.GET("/Notifications", h.getNotifications)
	}
}
