package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"devreg/pkg/db"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeStatus := "connected"
	status := "healthy"
	if err := s.database.PingContext(ctx); err != nil {
		storeStatus = "disconnected"
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Store:     storeStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	summaries := make([]DeviceSummary, 0, len(devices))
	for _, d := range devices {
		summaries = append(summaries, DeviceSummary{
			ID:     d.ID,
			Name:   d.Name,
			Type:   d.Type,
			Status: d.Status,
		})
	}

	out := ListDevicesOutput{
		Devices: summaries,
		Count:   len(summaries),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("device %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get device: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(GetDeviceOutput{Device: d})), nil
}

func (s *Server) handleRegisterDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	// Reuse the REST validation rules on the tool arguments
	body := map[string]any{}
	for _, k := range []string{"name", "type", "status", "config"} {
		if v, ok := args[k]; ok && v != nil {
			body[k] = v
		}
	}
	if err := s.validator.ValidateCreate(body); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	nd := db.NewDevice{}
	nd.Name, _ = body["name"].(string)
	nd.Type, _ = body["type"].(string)
	nd.Status, _ = body["status"].(string)
	nd.Config, _ = body["config"].(map[string]any)

	d, err := s.store.Create(ctx, nd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to register device: %s", err)), nil
	}

	out := RegisterDeviceOutput{
		Message: fmt.Sprintf("Device %q registered with id %d", d.Name, d.ID),
		Device:  d,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleUpdateDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	body := map[string]any{}
	for _, k := range []string{"status", "config"} {
		if v, ok := args[k]; ok && v != nil {
			body[k] = v
		}
	}
	if err := s.validator.ValidateUpdate(body); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	u := db.DeviceUpdate{}
	if status, ok := body["status"].(string); ok {
		u.Status = &status
	}
	if config, ok := body["config"].(map[string]any); ok {
		u.Config = config
	}

	d, err := s.store.Update(ctx, id, u)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("device %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to update device: %s", err)), nil
	}

	out := UpdateDeviceOutput{
		Message: fmt.Sprintf("Device %d updated", d.ID),
		Device:  d,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleRemoveDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("device %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get device: %s", err)), nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("device %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove device: %s", err)), nil
	}

	out := RemoveDeviceOutput{
		Success: true,
		Message: fmt.Sprintf("Device %q (id %d) deleted", d.Name, d.ID),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredID(request mcp.CallToolRequest) (int64, error) {
	args := request.GetArguments()
	v, ok := args["id"]
	if !ok || v == nil {
		return 0, errors.New(`required parameter "id" is missing`)
	}
	f, ok := v.(float64)
	if !ok || f != float64(int64(f)) || f <= 0 {
		return 0, errors.New(`parameter "id" must be a positive integer`)
	}
	return int64(f), nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
