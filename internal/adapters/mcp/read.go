package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

// RegisterReadTools adds all read-only project tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.ProjectRepository, bridgeURL string) {
	s.AddTool(listProjectsTool(), listProjectsHandler(repo))
	s.AddTool(getProjectTool(), getProjectHandler(repo))
	s.AddTool(playbackStatusTool(), playbackStatusHandler(bridgeURL))
}

// --- list_projects ---

func listProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all teleprompter projects with their IDs, segment counts and modification times, newest first."),
	)
}

func listProjectsHandler(repo ports.ProjectRepository) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := repo.List()
		if err != nil {
			return toolError(err)
		}

		if len(summaries) == 0 {
			return mcp.NewToolResultText("No projects."), nil
		}

		var sb strings.Builder
		for _, s := range summaries {
			fmt.Fprintf(&sb, "%s  %s  (%d segments, modified %s)\n",
				s.ID, s.Name, s.SegmentCount, s.ModifiedAt.Format(time.RFC3339))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_project ---

func getProjectTool() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Read a project's segments: kind, timing and text content."),
		mcp.WithString("project_id",
			mcp.Description("Project ID"),
			mcp.Required(),
		),
	)
}

func getProjectHandler(repo ports.ProjectRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("project_id", "")
		if id == "" {
			return toolError(fmt.Errorf("project_id is required"))
		}

		project, err := repo.Load(id)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s)\n", project.Name, project.ID)
		for i, seg := range project.Segments {
			fmt.Fprintf(&sb, "\n--- segment %d [%s] ---\n", i+1, seg.Kind)
			switch seg.Kind {
			case domain.SegmentText:
				sb.WriteString(seg.Content)
				sb.WriteByte('\n')
			default:
				fmt.Fprintf(&sb, "asset: %s\n", seg.AssetPath)
				if seg.EndTime > seg.StartTime {
					fmt.Fprintf(&sb, "window: %.1fs – %.1fs\n", seg.StartTime, seg.EndTime)
				}
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- playback_status ---

func playbackStatusTool() mcp.Tool {
	return mcp.NewTool("playback_status",
		mcp.WithDescription("Read the live playback status from the running prompter's remote bridge."),
	)
}

func playbackStatusHandler(bridgeURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := bridgeGet(ctx, bridgeURL+"/status")
		if err != nil {
			return toolError(fmt.Errorf("prompter not reachable: %w", err))
		}

		var status domain.PlaybackStatus
		if err := json.Unmarshal(body, &status); err != nil {
			return toolError(fmt.Errorf("decoding status: %w", err))
		}

		state := "stopped"
		switch {
		case status.IsPlaying && status.IsPaused:
			state = "paused"
		case status.IsPlaying:
			state = "playing"
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "project: %s\n", status.ProjectName)
		fmt.Fprintf(&sb, "state: %s\n", state)
		fmt.Fprintf(&sb, "segment: %d/%d\n", status.CurrentSegment+1, status.TotalSegments)
		fmt.Fprintf(&sb, "speed: %.2fx\n", status.Speed)
		fmt.Fprintf(&sb, "mirror: %t\n", status.Mirror)
		fmt.Fprintf(&sb, "live: %t\n", status.IsLive)
		fmt.Fprintf(&sb, "connected clients: %d\n", status.ConnectedClients)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

var bridgeClient = &http.Client{Timeout: 5 * time.Second}

func bridgeGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := bridgeClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
