package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/internal/logging"
	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ModesURI is the resource listing the supported conversions.
const ModesURI = "unitconv://modes"

// ConversionResponse is the structured result of the convert tool.
type ConversionResponse struct {
	Value  string      `json:"value" jsonschema_description:"The raw input that was converted"`
	Mode   domain.Mode `json:"mode" jsonschema_description:"The conversion applied"`
	Result string      `json:"result" jsonschema_description:"The formatted result, e.g. '100000.0 Meters'"`
}

// ModeInfo describes one supported conversion.
type ModeInfo struct {
	Mode        domain.Mode `json:"mode"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

// ModesResponse lists the supported conversions in menu order.
type ModesResponse struct {
	Modes []ModeInfo `json:"modes" jsonschema_description:"Supported conversions in menu order"`
}

// StateResponse wraps a session snapshot.
type StateResponse struct {
	State domain.State `json:"state" jsonschema_description:"The current state of the converter session"`
}

// ConvertArgs are the arguments of the convert tool.
type ConvertArgs struct {
	Value string `json:"value"`
	Mode  string `json:"mode"`
}

// SessionArgs identify a hosted session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// InputArgs are the arguments of the session_input tool.
type InputArgs struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// ModeArgs are the arguments of the session_mode tool.
type ModeArgs struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

// Server exposes the converter and hosted sessions as an MCP Server.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager: manager,
		mcpServer: server.NewMCPServer("unitconv-mcp", strings.TrimSpace(unitconv.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	modeNames := make([]string, 0, 3)
	for _, m := range conversion.Modes() {
		modeNames = append(modeNames, string(m))
	}

	// TOOL: convert
	s.mcpServer.AddTool(mcp.NewTool("convert",
		mcp.WithDescription("Convert a value: Distance (km to m), Temperature (°F to °C, rounded) or Weight (g to kg). Non-numeric values count as 0."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The number to convert, as text")),
		mcp.WithString("mode", mcp.Required(), mcp.Description("Conversion mode"), mcp.Enum(modeNames...)),
		mcp.WithOutputSchema[ConversionResponse](),
	), mcp.NewStructuredToolHandler(s.handleConvert))

	// TOOL: list_modes
	s.mcpServer.AddTool(mcp.NewTool("list_modes",
		mcp.WithDescription("List the supported conversions in menu order."),
		mcp.WithOutputSchema[ModesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListModes))

	// TOOL: session_state
	s.mcpServer.AddTool(mcp.NewTool("session_state",
		mcp.WithDescription("Get the state of a converter session, starting it if it does not exist."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleSessionState))

	// TOOL: session_input
	s.mcpServer.AddTool(mcp.NewTool("session_input",
		mcp.WithDescription("Replace the input text of a converter session and return the recomputed state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("input", mcp.Required(), mcp.Description("New input text")),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleSessionInput))

	// TOOL: session_mode
	s.mcpServer.AddTool(mcp.NewTool("session_mode",
		mcp.WithDescription("Select the conversion mode of a converter session and return the recomputed state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("mode", mcp.Required(), mcp.Description("Conversion mode"), mcp.Enum(modeNames...)),
		mcp.WithOutputSchema[StateResponse](),
	), mcp.NewStructuredToolHandler(s.handleSessionMode))

	// TOOL: session_delete
	s.mcpServer.AddTool(mcp.NewTool("session_delete",
		mcp.WithDescription("Delete a converter session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.manager.Delete(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("session %q deleted", id)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConversionResponse, error) {
	mode, err := conversion.ParseMode(args.Mode)
	if err != nil {
		return ConversionResponse{}, err
	}
	return ConversionResponse{
		Value:  args.Value,
		Mode:   mode,
		Result: conversion.Convert(args.Value, mode),
	}, nil
}

func (s *Server) handleListModes(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (ModesResponse, error) {
	return listModes(), nil
}

func (s *Server) handleSessionState(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (StateResponse, error) {
	state, err := s.manager.LoadOrStart(ctx, args.SessionID)
	if err != nil {
		return StateResponse{}, fmt.Errorf("load failed: %w", err)
	}
	return StateResponse{State: *state}, nil
}

func (s *Server) handleSessionInput(ctx context.Context, request mcp.CallToolRequest, args InputArgs) (StateResponse, error) {
	return s.update(ctx, args.SessionID, session.InputChanged(args.Input))
}

func (s *Server) handleSessionMode(ctx context.Context, request mcp.CallToolRequest, args ModeArgs) (StateResponse, error) {
	mode, err := conversion.ParseMode(args.Mode)
	if err != nil {
		return StateResponse{}, err
	}
	return s.update(ctx, args.SessionID, session.ModeSelected(mode))
}

// update starts the session when needed, then applies the change.
func (s *Server) update(ctx context.Context, sessionID string, c session.Change) (StateResponse, error) {
	_, next, err := s.manager.StartOrUpdate(ctx, sessionID, c)
	if err != nil {
		return StateResponse{}, fmt.Errorf("update failed: %w", err)
	}
	s.logger.Debug("MCP: Session updated", "session_id", sessionID, "event", c.Type, "result", next.Result)
	return StateResponse{State: *next}, nil
}

func listModes() ModesResponse {
	pairs := conversion.Pairs()
	resp := ModesResponse{Modes: make([]ModeInfo, len(pairs))}
	for i, p := range pairs {
		resp.Modes[i] = ModeInfo{
			Mode:        p.Mode,
			From:        p.From,
			To:          p.To,
			Label:       p.Label,
			Description: p.Description(),
		}
	}
	return resp
}

func (s *Server) registerResources() {
	// EXPOSE: unitconv://modes
	s.mcpServer.AddResource(mcp.NewResource(ModesURI, "Supported Conversions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(listModes())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ModesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
