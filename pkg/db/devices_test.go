package db

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"devreg/pkg/device"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return database
}

func TestCreate_Defaults(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	d, err := database.Devices().Create(ctx, NewDevice{
		Name: "Kitchen Light",
		Type: device.TypeLight,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if d.ID <= 0 {
		t.Errorf("expected positive id, got %d", d.ID)
	}
	if d.Status != device.StatusOffline {
		t.Errorf("Status = %q, want %q", d.Status, device.StatusOffline)
	}
	if d.Config == nil || len(d.Config) != 0 {
		t.Errorf("Config = %v, want empty object", d.Config)
	}
	if !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v on create", d.CreatedAt, d.UpdatedAt)
	}
}

func TestCreate_ThenGet(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	created, err := database.Devices().Create(ctx, NewDevice{
		Name:   "Front Door Camera",
		Type:   device.TypeCamera,
		Status: device.StatusOnline,
		Config: map[string]any{"resolution": "1080p", "fps": float64(30)},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := database.Devices().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.ID != created.ID || got.Name != created.Name || got.Type != created.Type || got.Status != created.Status {
		t.Errorf("Get() = %+v, want %+v", got, created)
	}
	if !reflect.DeepEqual(got.Config, created.Config) {
		t.Errorf("Config = %v, want %v", got.Config, created.Config)
	}
}

func TestGet_NotFound(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Devices().Get(context.Background(), 9999)
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Get() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	devices := database.Devices()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		if _, err := devices.Create(ctx, NewDevice{Name: name, Type: device.TypeSensor}); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	list, err := devices.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d devices, want 3", len(list))
	}

	for i, want := range []string{"third", "second", "first"} {
		if list[i].Name != want {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestUpdate_StatusOnly(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	devices := database.Devices()

	created, err := devices.Create(ctx, NewDevice{
		Name:   "Bedroom Switch",
		Type:   device.TypeSwitch,
		Config: map[string]any{"wired": true},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Timestamps have second resolution; cross a boundary so the
	// updated_at bump is observable.
	time.Sleep(1100 * time.Millisecond)

	status := device.StatusOn
	updated, err := devices.Update(ctx, created.ID, DeviceUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != device.StatusOn {
		t.Errorf("Status = %q, want %q", updated.Status, device.StatusOn)
	}
	if !reflect.DeepEqual(updated.Config, created.Config) {
		t.Errorf("Config changed on status-only update: %v, want %v", updated.Config, created.Config)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at %v not after %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed on update: %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestUpdate_ConfigOnly(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	devices := database.Devices()

	created, err := devices.Create(ctx, NewDevice{
		Name:   "Hallway Thermostat",
		Type:   device.TypeThermostat,
		Status: device.StatusIdle,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newConfig := map[string]any{"target_temp": 19.5}
	updated, err := devices.Update(ctx, created.ID, DeviceUpdate{Config: newConfig})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != device.StatusIdle {
		t.Errorf("Status changed on config-only update: %q", updated.Status)
	}
	if !reflect.DeepEqual(updated.Config, newConfig) {
		t.Errorf("Config = %v, want %v", updated.Config, newConfig)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	devices := database.Devices()

	created, err := devices.Create(ctx, NewDevice{Name: "Speaker", Type: device.TypeSpeaker})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = devices.Update(ctx, created.ID, DeviceUpdate{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Errorf("Update() error = %v, want ErrNoFieldsToUpdate", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	database := openTestDB(t)

	status := device.StatusOff
	_, err := database.Devices().Update(context.Background(), 9999, DeviceUpdate{Status: &status})
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Update() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	devices := database.Devices()

	created, err := devices.Create(ctx, NewDevice{Name: "Old Lock", Type: device.TypeLock})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := devices.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := devices.Get(ctx, created.ID); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrDeviceNotFound", err)
	}

	if err := devices.Delete(ctx, created.ID); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("second Delete() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := database.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	list, err := database.Devices().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("seeded %d devices, want 3", len(list))
	}

	if err := database.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Simulate a restart against the populated store
	database, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = database.Close() }()

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() after reopen error = %v", err)
	}
	needed, err := database.NeedsSeed(ctx)
	if err != nil {
		t.Fatalf("NeedsSeed() error = %v", err)
	}
	if needed {
		t.Error("NeedsSeed() = true on populated store")
	}
	if err := database.Seed(ctx); err != nil {
		t.Fatalf("Seed() after reopen error = %v", err)
	}

	list, err = database.Devices().List(ctx)
	if err != nil {
		t.Fatalf("List() after reopen error = %v", err)
	}
	if len(list) != 3 {
		t.Errorf("store has %d devices after reseed, want 3", len(list))
	}
}
