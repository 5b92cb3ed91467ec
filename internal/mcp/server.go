// Package mcp exposes the progress pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/topictracker/pace/internal/github"
	"github.com/topictracker/pace/internal/models"
	"github.com/topictracker/pace/internal/progress"
	"github.com/topictracker/pace/internal/update"
)

// Server wraps the tracker client and progress document as MCP tools.
type Server struct {
	gh   github.Client
	path string
}

// NewServer creates the MCP server wrapper for the given tracker client and
// progress file path.
func NewServer(gh github.Client, progressPath string) *Server {
	return &Server{
		gh:   gh,
		path: progressPath,
	}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("pace", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.progressStatusTool())
	srv.AddTool(s.listPhasesTool())
	srv.AddTool(s.listIssuesTool())
	srv.AddTool(s.updateProgressTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// pace_progress_status
func (s *Server) progressStatusTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("pace_progress_status",
		mcp.WithDescription("Read the tracked progress document and return the current status and task metrics as JSON: phase, phase name, health, last update time, task counters, and velocity."),
	)
	return tool, s.handleProgressStatus
}

func (s *Server) handleProgressStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := s.loadView()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]any{
		"current_status": view.CurrentStatus,
		"metrics":        view.Metrics,
	}

	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pace_list_phases
func (s *Server) listPhasesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("pace_list_phases",
		mcp.WithDescription("Read the tracked progress document and return the roadmap phases as a JSON array. Each phase has: phase number, name, status (not_started/in_progress/completed), tasks_total, and tasks_completed."),
	)
	return tool, s.handleListPhases
}

func (s *Server) handleListPhases(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := s.loadView()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(view.Phases)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal phases: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pace_list_issues
func (s *Server) listIssuesTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("pace_list_issues",
		mcp.WithDescription("Fetch the live issue listing from the tracker. Returns a JSON array with number, title, state, labels, closed_at, and whether the entry is a pull request."),
		mcp.WithString("state", mcp.Description("State filter: all (default), open, closed")),
	)
	return tool, s.handleListIssues
}

func (s *Server) handleListIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issues, err := s.gh.ListIssues(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list issues: %v", err)), nil
	}

	state := request.GetString("state", "all")
	if state != "all" && state != models.IssueStateOpen && state != models.IssueStateClosed {
		return mcp.NewToolResultError(fmt.Sprintf("invalid state filter: %s (must be all, open, or closed)", state)), nil
	}

	type issueOut struct {
		Number      int      `json:"number"`
		Title       string   `json:"title"`
		State       string   `json:"state"`
		Labels      []string `json:"labels"`
		ClosedAt    string   `json:"closed_at,omitempty"`
		PullRequest bool     `json:"pull_request"`
		URL         string   `json:"url,omitempty"`
	}

	out := make([]issueOut, 0, len(issues))
	for _, issue := range issues {
		if state != "all" && issue.State != state {
			continue
		}
		out = append(out, issueOut{
			Number:      issue.Number,
			Title:       issue.Title,
			State:       issue.State,
			Labels:      issue.LabelNames(),
			ClosedAt:    issue.ClosedAt,
			PullRequest: issue.IsPullRequest(),
			URL:         issue.HTMLURL,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal issues: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pace_update_progress
func (s *Server) updateProgressTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("pace_update_progress",
		mcp.WithDescription("Run a full progress update: fetch the tracker issues, recompute metrics, velocity, phases, and health, and rewrite the progress document. Returns the computed snapshot as JSON."),
	)
	return tool, s.handleUpdateProgress
}

func (s *Server) handleUpdateProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := update.Run(ctx, s.gh, s.path, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// loadView reads the progress document and decodes the display view.
func (s *Server) loadView() (*models.Progress, error) {
	doc, err := progress.Load(s.path)
	if err != nil {
		return nil, err
	}
	return doc.View()
}
