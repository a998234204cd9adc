package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"devreg/pkg/device"
)

var (
	// ErrDeviceNotFound indicates no device row matched the given id.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrNoFieldsToUpdate indicates an update carried neither status nor config.
	ErrNoFieldsToUpdate = errors.New("nothing to update")
)

// NewDevice carries the fields accepted when registering a device.
// Status and Config are optional; the store applies defaults.
type NewDevice struct {
	Name   string
	Type   string
	Status string
	Config map[string]any
}

// DeviceUpdate carries the mutable fields of a device.
// A nil field is left untouched; at least one must be set.
type DeviceUpdate struct {
	Status *string
	Config map[string]any
}

// DeviceStore provides device CRUD operations.
type DeviceStore interface {
	Create(ctx context.Context, nd NewDevice) (*device.Device, error)
	List(ctx context.Context) ([]*device.Device, error)
	Get(ctx context.Context, id int64) (*device.Device, error)
	Update(ctx context.Context, id int64, u DeviceUpdate) (*device.Device, error)
	Delete(ctx context.Context, id int64) error
}

// Devices returns a DeviceStore for this database.
func (db *DB) Devices() DeviceStore {
	return &deviceStore{db: db}
}

type deviceStore struct {
	db *DB
}

func (s *deviceStore) Create(ctx context.Context, nd NewDevice) (*device.Device, error) {
	status := nd.Status
	if status == "" {
		status = device.DefaultStatus
	}

	configText, err := marshalConfig(nd.Config)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (name, type, status, config)
		VALUES (?, ?, ?, ?)
	`, nd.Name, nd.Type, status, configText)
	if err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *deviceStore) List(ctx context.Context) ([]*device.Device, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, status, config, created_at, updated_at
		FROM devices ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var devices []*device.Device
	for rows.Next() {
		d, err := scanDevice(rows.Scan)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *deviceStore) Get(ctx context.Context, id int64) (*device.Device, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, status, config, created_at, updated_at
		FROM devices WHERE id = ?
	`, id)

	d, err := scanDevice(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deviceStore) Update(ctx context.Context, id int64, u DeviceUpdate) (*device.Device, error) {
	var sets []string
	var args []any

	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *u.Status)
	}
	if u.Config != nil {
		configText, err := marshalConfig(u.Config)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "config = ?")
		args = append(args, configText)
	}
	if len(sets) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	sets = append(sets, "updated_at = datetime('now')")
	args = append(args, id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE devices SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update device: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDeviceNotFound
	}

	return s.Get(ctx, id)
}

func (s *deviceStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// scanDevice reads one device row, deserializing the config column.
func scanDevice(scan func(...any) error) (*device.Device, error) {
	d := &device.Device{}
	var configText, createdAt, updatedAt string
	if err := scan(&d.ID, &d.Name, &d.Type, &d.Status, &configText, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	config, err := unmarshalConfig(configText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config for device %d: %w", d.ID, err)
	}
	d.Config = config

	d.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	d.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return d, nil
}

// marshalConfig serializes a config object for storage. Nil becomes "{}".
func marshalConfig(config map[string]any) (string, error) {
	if config == nil {
		return "{}", nil
	}
	b, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}
	return string(b), nil
}

// unmarshalConfig deserializes a stored config column.
// Empty text deserializes to an empty object.
func unmarshalConfig(text string) (map[string]any, error) {
	if text == "" {
		return map[string]any{}, nil
	}
	var config map[string]any
	if err := json.Unmarshal([]byte(text), &config); err != nil {
		return nil, err
	}
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}
