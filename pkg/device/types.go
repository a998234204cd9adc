package device

import "time"

// Device represents a registered IoT device record.
type Device struct {
	ID        int64          `json:"id"`         // Store-assigned identifier
	Name      string         `json:"name"`       // Human-readable name
	Type      string         `json:"type"`       // Device type (light, thermostat, etc.)
	Status    string         `json:"status"`     // Current status (on, off, online, offline, idle)
	Config    map[string]any `json:"config"`     // Opaque device-type-specific configuration
	CreatedAt time.Time      `json:"created_at"` // Set once on registration
	UpdatedAt time.Time      `json:"updated_at"` // Refreshed on every update
}

// Device type constants
const (
	TypeLight      = "light"
	TypeThermostat = "thermostat"
	TypeCamera     = "camera"
	TypeSensor     = "sensor"
	TypeSwitch     = "switch"
	TypeSpeaker    = "speaker"
	TypeLock       = "lock"
	TypeOther      = "other"
)

// Status constants
const (
	StatusOn      = "on"
	StatusOff     = "off"
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusIdle    = "idle"
)

// DefaultStatus is assigned when a device is registered without a status.
const DefaultStatus = StatusOffline

// Types lists the accepted device types.
var Types = []string{
	TypeLight, TypeThermostat, TypeCamera, TypeSensor,
	TypeSwitch, TypeSpeaker, TypeLock, TypeOther,
}

// Statuses lists the accepted device statuses.
var Statuses = []string{StatusOn, StatusOff, StatusOnline, StatusOffline, StatusIdle}

// ValidType reports whether t is an accepted device type.
func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is an accepted device status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
