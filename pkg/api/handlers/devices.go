package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"devreg/pkg/api/types"
	"devreg/pkg/db"
	"devreg/pkg/device/schema"
)

// DevicesHandler handles device CRUD endpoints
type DevicesHandler struct {
	store     db.DeviceStore
	validator *schema.Validator
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(store db.DeviceStore, validator *schema.Validator) *DevicesHandler {
	return &DevicesHandler{store: store, validator: validator}
}

// RegisterDevice handles POST /devices
// @Summary      Register a device
// @Description  Registers a new device record. Status defaults to "offline" and config to an empty object.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        request  body      types.RegisterDeviceRequest  true  "Device to register"
// @Success      201      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid or malformed request"
// @Failure      500      {object}  types.ErrorResponse  "Store error"
// @Router       /devices [post]
func (h *DevicesHandler) RegisterDevice(c *gin.Context) {
	ctx := c.Request.Context()

	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid JSON request body",
		})
		return
	}

	if err := h.validator.ValidateCreate(body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: "Request body failed validation",
			Details: err.Error(),
		})
		return
	}

	nd := db.NewDevice{}
	nd.Name, _ = body["name"].(string)
	nd.Type, _ = body["type"].(string)
	nd.Status, _ = body["status"].(string)
	nd.Config, _ = body["config"].(map[string]any)

	d, err := h.store.Create(ctx, nd)
	if err != nil {
		h.internalError(c, "failed to register device", err)
		return
	}

	c.JSON(http.StatusCreated, types.DeviceResponse{
		Message: "Device registered successfully",
		Device:  d,
	})
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Description  Returns summaries of all registered devices, most recently created first. Summaries omit config.
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      500  {object}  types.ErrorResponse  "Store error"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	devices, err := h.store.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to list devices", err)
		return
	}

	summaries := make([]types.DeviceSummary, 0, len(devices))
	for _, d := range devices {
		summaries = append(summaries, types.Summarize(d))
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Message: "Devices retrieved successfully",
		Count:   len(summaries),
		Devices: summaries,
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device details
// @Description  Returns the full record for one device, including config.
// @Tags         devices
// @Produce      json
// @Param        id   path      int  true  "Device id"
// @Success      200  {object}  types.DeviceResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid id"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Store error"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			h.notFound(c)
			return
		}
		h.internalError(c, "failed to get device", err)
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{
		Message: "Device retrieved successfully",
		Device:  d,
	})
}

// UpdateDevice handles PUT /devices/:id
// @Summary      Update a device
// @Description  Updates the status and/or config of a device. At least one field is required.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Device id"
// @Param        request  body      types.UpdateDeviceRequest  true  "Fields to update"
// @Success      200      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid id or request body"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      500      {object}  types.ErrorResponse  "Store error"
// @Router       /devices/{id} [put]
func (h *DevicesHandler) UpdateDevice(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid JSON request body",
		})
		return
	}

	if err := h.validator.ValidateUpdate(body); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: "Request body failed validation",
			Details: err.Error(),
		})
		return
	}

	u := db.DeviceUpdate{}
	if status, ok := body["status"].(string); ok {
		u.Status = &status
	}
	if config, ok := body["config"].(map[string]any); ok {
		u.Config = config
	}

	d, err := h.store.Update(ctx, id, u)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDeviceNotFound):
			h.notFound(c)
		case errors.Is(err, db.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "validation_error",
				Message: "At least one of status or config is required",
			})
		default:
			h.internalError(c, "failed to update device", err)
		}
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{
		Message: "Device updated successfully",
		Device:  d,
	})
}

// DeleteDevice handles DELETE /devices/:id
// @Summary      Delete a device
// @Description  Removes a device record. Hard delete; the id is never reused for the removed record.
// @Tags         devices
// @Produce      json
// @Param        id   path      int  true  "Device id"
// @Success      200  {object}  types.DeleteDeviceResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid id"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Store error"
// @Router       /devices/{id} [delete]
func (h *DevicesHandler) DeleteDevice(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseID(c)
	if !ok {
		return
	}

	// Fetch first: the response echoes what was deleted.
	d, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			h.notFound(c)
			return
		}
		h.internalError(c, "failed to get device", err)
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			h.notFound(c)
			return
		}
		h.internalError(c, "failed to delete device", err)
		return
	}

	c.JSON(http.StatusOK, types.DeleteDeviceResponse{
		Message: "Device deleted successfully",
		DeletedDevice: types.DeletedDevice{
			ID:   d.ID,
			Name: d.Name,
			Type: d.Type,
		},
	})
}

// parseID extracts the :id path parameter as a positive integer,
// writing a 400 response when it is not one.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func (h *DevicesHandler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{
		Error:   "not_found",
		Message: "Device not found",
	})
}

// internalError logs the underlying failure and returns a generic 500.
// Store error detail is never sent to the client.
func (h *DevicesHandler) internalError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
