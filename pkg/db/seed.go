package db

import (
	"context"
	"fmt"

	"devreg/pkg/device"
)

// seedDevices are the fixed rows inserted the first time the store comes up
// empty. A bootstrap convenience only; steady-state data is caller-created.
var seedDevices = []NewDevice{
	{
		Name:   "Living Room Light",
		Type:   device.TypeLight,
		Status: device.StatusOff,
		Config: map[string]any{"brightness": 80, "color": "warm_white"},
	},
	{
		Name:   "Hallway Thermostat",
		Type:   device.TypeThermostat,
		Status: device.StatusOnline,
		Config: map[string]any{"target_temp": 21.5, "mode": "heat"},
	},
	{
		Name:   "Front Door Camera",
		Type:   device.TypeCamera,
		Status: device.StatusOnline,
		Config: map[string]any{"resolution": "1080p", "night_vision": true},
	},
}

// NeedsSeed returns true if the devices table is empty.
func (db *DB) NeedsSeed(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM devices`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Seed inserts the sample devices if the table is empty.
// Idempotent across restarts: a populated table is left untouched.
func (db *DB) Seed(ctx context.Context) error {
	needed, err := db.NeedsSeed(ctx)
	if err != nil {
		return fmt.Errorf("failed to check seed status: %w", err)
	}
	if !needed {
		return nil
	}

	devices := db.Devices()
	for _, nd := range seedDevices {
		if _, err := devices.Create(ctx, nd); err != nil {
			return fmt.Errorf("failed to seed device %q: %w", nd.Name, err)
		}
	}

	return nil
}
