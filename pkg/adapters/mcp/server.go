package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/supraja777/multiagent/internal/presentation/graph"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/runner"
)

const (
	// AskToolName is the MCP tool that runs a task through the agents.
	AskToolName = "ask"
	// GraphResourceURI serves the routing graph as Mermaid.
	GraphResourceURI = "graph://mermaid"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	Run(ctx context.Context, request string) (*domain.Transcript, error)
	Graph() *domain.Graph
}

// AskResult is the structured content returned by the ask tool.
type AskResult struct {
	RunID    string           `json:"run_id" jsonschema_description:"Identifier of the run"`
	Status   domain.RunStatus `json:"status" jsonschema_description:"finished or failed"`
	Answer   string           `json:"answer,omitempty" jsonschema_description:"The validated answer"`
	Error    string           `json:"error,omitempty" jsonschema_description:"Why the run halted, if it did"`
	Path     []domain.NodeID  `json:"path" jsonschema_description:"Nodes visited in order"`
	Messages []domain.Message `json:"messages" jsonschema_description:"The full conversation log"`
}

// Server exposes the engine as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("multiagent-mcp", strings.TrimSpace(version)),
	}
	s.mcpServer.AddTool(s.AskDefinition(), s.HandleAsk)
	s.mcpServer.AddResource(mcp.NewResource(GraphResourceURI, "Routing graph",
		mcp.WithResourceDescription("Mermaid flowchart of the supervisor-routed agent graph"),
		mcp.WithMIMEType("text/plain"),
	), s.HandleGraph)
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
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

		s.logger.Info("shutdown signal received, stopping MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AskDefinition returns the MCP tool definition for ask.
func (s *Server) AskDefinition() mcp.Tool {
	return mcp.NewTool(AskToolName,
		mcp.WithDescription(
			"Run a task through a supervisor that routes it to a prompt enhancer, a web researcher or a coder, "+
				"and a validator that checks the answer. Returns the validated answer and the full conversation.",
		),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("The question or task, in natural language"),
		),
		mcp.WithOutputSchema[AskResult](),
	)
}

// HandleAsk processes the ask tool call. Halted runs are reported as tool
// errors carrying the partial conversation.
func (s *Server) HandleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request, err := runner.SanitizeInput(strings.TrimSpace(req.GetString("request", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}
	if request == "" {
		return mcp.NewToolResultError("'request' is required"), nil
	}

	tr, runErr := s.engine.Run(ctx, request)
	if tr == nil {
		return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", runErr)), nil
	}

	res := AskResult{
		RunID:    tr.RunID,
		Status:   tr.Status,
		Path:     tr.Path,
		Messages: tr.Messages,
	}
	if answer, ok := tr.Answer(); ok {
		res.Answer = answer.Content
	}

	if runErr != nil {
		s.logger.Warn("MCP ask: run halted", "run_id", tr.RunID, "err", runErr)
		res.Error = runErr.Error()
		out := mcp.NewToolResultStructured(res, fmt.Sprintf("run halted: %v", runErr))
		out.IsError = true
		return out, nil
	}
	return mcp.NewToolResultStructured(res, res.Answer), nil
}

// HandleGraph serves the graph://mermaid resource.
func (s *Server) HandleGraph(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphResourceURI,
			MIMEType: "text/plain",
			Text:     graph.GenerateMermaid(s.engine.Graph(), nil),
		},
	}, nil
}
