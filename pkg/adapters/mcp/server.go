package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	Report  *domain.Report `json:"report" jsonschema_description:"Summary of the simulation"`
	Summary string         `json:"summary" jsonschema_description:"One-line outcome, e.g. 'String accepted in 6 steps.'"`
}

// MachinesResponse is the structured result of the list_machines tool.
type MachinesResponse struct {
	Machines []string `json:"machines" jsonschema_description:"IDs of the available machines"`
}

// Server wraps a Simulator and exposes it as an MCP Server.
type Server struct {
	sim       ports.Simulator
	maxDepth  int
	mcpServer *server.MCPServer
}

// Option configures the MCP server.
type Option func(*Server)

// WithDefaultDepth sets the depth bound used when a call omits max_depth.
func WithDefaultDepth(depth int) Option {
	return func(s *Server) {
		s.maxDepth = depth
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sim ports.Simulator, opts ...Option) *Server {
	s := &Server{
		sim:       sim,
		maxDepth:  domain.DefaultMaxDepth,
		mcpServer: server.NewMCPServer("tracentm-mcp", tracentm.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Trace an input string on a non-deterministic Turing machine, breadth-first, up to a depth bound."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("ID of the machine (see list_machines)")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Initial tape contents")),
		mcp.WithNumber("max_depth", mcp.Description("Depth bound (server default when omitted)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: list_machines
	listTool := mcp.NewTool("list_machines",
		mcp.WithDescription("List the IDs of the available machines."),
		mcp.WithOutputSchema[MachinesResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListMachines))

	// TOOL: get_machine
	s.mcpServer.AddTool(mcp.NewTool("get_machine",
		mcp.WithDescription("Get the full definition of a machine: states, alphabets and transitions."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("ID of the machine")),
	), s.handleGetMachine)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	machineID, _ := args["machine"].(string)
	input, _ := args["input"].(string)
	if machineID == "" {
		return SimulateResponse{}, fmt.Errorf("machine is required")
	}

	depth := s.maxDepth
	if v, ok := args["max_depth"].(float64); ok {
		depth = int(v)
	}

	rep, err := s.sim.Simulate(ctx, machineID, input, depth)
	if err != nil {
		slog.Warn("MCP Simulate: rejected", "error", err, "machine", machineID)
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}

	return SimulateResponse{Report: rep, Summary: summary(rep)}, nil
}

func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MachinesResponse, error) {
	ids, err := s.sim.Machines()
	if err != nil {
		return MachinesResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return MachinesResponse{Machines: ids}, nil
}

func (s *Server) handleGetMachine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["machine"].(string)
	m, err := s.sim.Machine(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get machine failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(m.Definition())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: tracentm://machines
	s.mcpServer.AddResource(mcp.NewResource("tracentm://machines", "Available Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sim.Machines()
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tracentm://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func summary(rep *domain.Report) string {
	switch rep.Verdict {
	case domain.VerdictAccept:
		return fmt.Sprintf("String accepted in %d steps.", rep.Steps)
	case domain.VerdictReject:
		return fmt.Sprintf("String rejected in %d steps.", rep.Steps)
	default:
		return fmt.Sprintf("Execution stopped after %d steps.", rep.Steps)
	}
}
