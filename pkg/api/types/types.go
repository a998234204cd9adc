package types

import (
	"time"

	"devreg/pkg/device"
)

// --- Request DTOs ---

// RegisterDeviceRequest is the request body for POST /devices
type RegisterDeviceRequest struct {
	Name   string         `json:"name" binding:"required"`
	Type   string         `json:"type" binding:"required"`
	Status string         `json:"status,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// UpdateDeviceRequest is the request body for PUT /devices/:id.
// At least one of Status/Config must be present.
type UpdateDeviceRequest struct {
	Status *string        `json:"status,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// DeviceSummary is the list-view representation of a device (no config).
type DeviceSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summarize derives the summary view of a device.
func Summarize(d *device.Device) DeviceSummary {
	return DeviceSummary{
		ID:        d.ID,
		Name:      d.Name,
		Type:      d.Type,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// DeviceResponse wraps a full device record.
type DeviceResponse struct {
	Message string         `json:"message"`
	Device  *device.Device `json:"device"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Devices []DeviceSummary `json:"devices"`
}

// DeletedDevice is the short record of a removed device.
type DeletedDevice struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DeleteDeviceResponse is returned from DELETE /devices/:id
type DeleteDeviceResponse struct {
	Message       string        `json:"message"`
	DeletedDevice DeletedDevice `json:"deleted_device"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
}

// IndexResponse is returned from GET /
type IndexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
