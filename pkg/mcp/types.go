package mcp

import "devreg/pkg/device"

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Store     string `json:"store" jsonschema:"description=Store connection status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Devices Tool ---

// DeviceSummary represents a device in list outputs (config omitted)
type DeviceSummary struct {
	ID     int64  `json:"id" jsonschema:"description=Store-assigned device id"`
	Name   string `json:"name" jsonschema:"description=Device name"`
	Type   string `json:"type" jsonschema:"description=Device type"`
	Status string `json:"status" jsonschema:"description=Current device status"`
}

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceSummary `json:"devices" jsonschema:"description=Registered devices, most recently created first"`
	Count   int             `json:"count" jsonschema:"description=Total number of devices"`
}

// --- Get Device Tool ---

// GetDeviceOutput is the output for the get_device tool
type GetDeviceOutput struct {
	Device *device.Device `json:"device" jsonschema:"description=Full device record including config"`
}

// --- Register Device Tool ---

// RegisterDeviceOutput is the output for the register_device tool
type RegisterDeviceOutput struct {
	Message string         `json:"message" jsonschema:"description=Status message"`
	Device  *device.Device `json:"device" jsonschema:"description=The registered device record"`
}

// --- Update Device Tool ---

// UpdateDeviceOutput is the output for the update_device tool
type UpdateDeviceOutput struct {
	Message string         `json:"message" jsonschema:"description=Status message"`
	Device  *device.Device `json:"device" jsonschema:"description=The updated device record"`
}

// --- Remove Device Tool ---

// RemoveDeviceOutput is the output for the remove_device tool
type RemoveDeviceOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the device was deleted"`
	Message string `json:"message" jsonschema:"description=Status message"`
}
