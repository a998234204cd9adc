package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health of the device registry and its store"),
		),
		s.handleGetHealth,
	)

	// List devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List all registered devices (summary view, without config)"),
		),
		s.handleListDevices,
	)

	// Get device
	s.mcpServer.AddTool(
		mcp.NewTool("get_device",
			mcp.WithDescription("Get the full record of a device, including its config"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Device id (positive integer)"),
			),
		),
		s.handleGetDevice,
	)

	// Register device
	s.mcpServer.AddTool(
		mcp.NewTool("register_device",
			mcp.WithDescription("Register a new device record. Status defaults to \"offline\" and config to an empty object."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Device name (1-100 characters)"),
			),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Device type (light, thermostat, camera, sensor, switch, speaker, lock, other)"),
			),
			mcp.WithString("status",
				mcp.Description("Initial status (on, off, online, offline, idle)"),
			),
			mcp.WithObject("config",
				mcp.Description("Device-type-specific configuration object"),
			),
		),
		s.handleRegisterDevice,
	)

	// Update device
	s.mcpServer.AddTool(
		mcp.NewTool("update_device",
			mcp.WithDescription("Update a device's status and/or config. At least one must be given."),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Device id (positive integer)"),
			),
			mcp.WithString("status",
				mcp.Description("New status (on, off, online, offline, idle)"),
			),
			mcp.WithObject("config",
				mcp.Description("New configuration object (replaces the stored one)"),
			),
		),
		s.handleUpdateDevice,
	)

	// Remove device
	s.mcpServer.AddTool(
		mcp.NewTool("remove_device",
			mcp.WithDescription("Delete a device record"),
			mcp.WithNumber("id",
				mcp.Required(),
				mcp.Description("Device id (positive integer)"),
			),
		),
		s.handleRemoveDevice,
	)
}
