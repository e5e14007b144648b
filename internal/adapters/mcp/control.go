package mcp

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"promptdeck/internal/application/commands"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// RegisterControlTools adds playback control and project write tools
// to the MCP server. Playback control goes through the running
// prompter's remote bridge; project writes go straight to storage.
func RegisterControlTools(s *server.MCPServer, repo ports.ProjectRepository, assets ports.AssetStore, bridgeURL string) {
	s.AddTool(controlTool(), controlHandler(bridgeURL))
	s.AddTool(createProjectTool(), createProjectHandler(repo))
	s.AddTool(renameProjectTool(), renameProjectHandler(repo))
	s.AddTool(duplicateProjectTool(), duplicateProjectHandler(repo))
	s.AddTool(deleteProjectTool(), deleteProjectHandler(repo, assets))
}

// --- control ---

func controlTool() mcp.Tool {
	return mcp.NewTool("control",
		mcp.WithDescription("Send a playback command to the running prompter. Commands: play, pause, stop, next_segment, prev_segment, set_speed, seek, toggle_mirror, reset_position, go_live, exit_live. set_speed takes a multiplier between 0.5 and 2.0; seek takes a pixel offset."),
		mcp.WithString("command",
			mcp.Description("Command name"),
			mcp.Required(),
		),
		mcp.WithNumber("value",
			mcp.Description("Command value, required for set_speed and seek"),
		),
	)
}

func controlHandler(bridgeURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("command", "")

		var cmd domain.Command
		if _, ok := req.GetArguments()["value"]; ok {
			cmd = domain.NewValuedCommand(domain.CommandType(name), req.GetFloat("value", 0))
		} else {
			cmd = domain.NewCommand(domain.CommandType(name))
		}
		if err := cmd.Validate(); err != nil {
			return toolError(err)
		}

		payload, err := cmd.MarshalJSON()
		if err != nil {
			return toolError(err)
		}
		if err := bridgePost(ctx, bridgeURL+"/command", payload); err != nil {
			return toolError(fmt.Errorf("prompter not reachable: %w", err))
		}

		return mcp.NewToolResultText(fmt.Sprintf("Sent %s", name)), nil
	}
}

// --- create_project ---

func createProjectTool() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new empty teleprompter project."),
		mcp.WithString("name",
			mcp.Description("Project name"),
			mcp.Required(),
		),
	)
}

func createProjectHandler(repo ports.ProjectRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateProjectCommand(repo, req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename_project ---

func renameProjectTool() mcp.Tool {
	return mcp.NewTool("rename_project",
		mcp.WithDescription("Rename a project."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
			mcp.Required(),
		),
	)
}

func renameProjectHandler(repo ports.ProjectRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameProjectCommand(repo, req.GetString("project_id", ""), req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- duplicate_project ---

func duplicateProjectTool() mcp.Tool {
	return mcp.NewTool("duplicate_project",
		mcp.WithDescription("Duplicate a project under a new name."),
		mcp.WithString("project_id",
			mcp.Description("Project ID to duplicate"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Name for the copy"),
			mcp.Required(),
		),
	)
}

func duplicateProjectHandler(repo ports.ProjectRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDuplicateProjectCommand(repo, req.GetString("project_id", ""), req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_project ---

func deleteProjectTool() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project and sweep assets no surviving project references."),
		mcp.WithString("project_id",
			mcp.Description("Project ID to delete"),
			mcp.Required(),
		),
	)
}

func deleteProjectHandler(repo ports.ProjectRepository, assets ports.AssetStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteProjectCommand(repo, assets, req.GetString("project_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func bridgePost(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := bridgeClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned %s", resp.Status)
	}
	return nil
}
