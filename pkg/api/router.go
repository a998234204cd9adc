package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"devreg/pkg/api/handlers"
	"devreg/pkg/api/types"
	"devreg/pkg/db"
	"devreg/pkg/device/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	database  *db.DB
	validator *schema.Validator
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		database:  database,
		validator: validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	metaHandler := handlers.NewMetaHandler(r.database)
	r.engine.GET("/", metaHandler.Index)
	r.engine.GET("/health", metaHandler.Health)

	devicesHandler := handlers.NewDevicesHandler(r.database.Devices(), r.validator)
	devices := r.engine.Group("/devices")
	{
		devices.POST("", devicesHandler.RegisterDevice)
		devices.GET("", devicesHandler.ListDevices)
		devices.GET("/:id", devicesHandler.GetDevice)
		devices.PUT("/:id", devicesHandler.UpdateDevice)
		devices.DELETE("/:id", devicesHandler.DeleteDevice)
	}

	// Catch-all for unmatched routes
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Route not found: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})
}

// Handler exposes the underlying http.Handler, used by the server and tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
