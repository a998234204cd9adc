package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devreg/pkg/api/types"
	"devreg/pkg/db"
)

// APIVersion is reported by the index endpoint.
const APIVersion = "1.0"

// MetaHandler handles the API index and health endpoints
type MetaHandler struct {
	database *db.DB
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(database *db.DB) *MetaHandler {
	return &MetaHandler{database: database}
}

// Index handles GET /
// @Summary      API metadata
// @Description  Returns the API name, version and endpoint map
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.IndexResponse
// @Router       / [get]
func (h *MetaHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, types.IndexResponse{
		Name:    "Device Registry API",
		Version: APIVersion,
		Endpoints: map[string]string{
			"POST /devices":       "Register a device",
			"GET /devices":        "List all devices",
			"GET /devices/:id":    "Get one device",
			"PUT /devices/:id":    "Update a device's status and/or config",
			"DELETE /devices/:id": "Delete a device",
			"GET /health":         "Health check",
		},
	})
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and its store
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Store is unreachable"
// @Router       /health [get]
func (h *MetaHandler) Health(c *gin.Context) {
	storeStatus := "connected"
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.database.PingContext(c.Request.Context()); err != nil {
		storeStatus = "disconnected"
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Store:     storeStatus,
		Timestamp: time.Now(),
	})
}
