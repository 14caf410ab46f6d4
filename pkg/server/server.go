package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/prompts"
	"github.com/richard-senior/hoops/pkg/protocol"
	"github.com/richard-senior/hoops/pkg/tools"
	"github.com/richard-senior/hoops/pkg/transport"
)

// Name and Version are reported in the initialize response
const (
	Name    = "hoops"
	Version = "1.0.0"
)

// some clients namespace tool names with this prefix
const toolPrefix = "mcp___"

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Server represents an MCP server
type Server struct {
	transport transport.Transport
	prompts   *prompts.PromptRegistry

	mu           sync.RWMutex
	handlers     map[string]HandlerFunc
	tools        []protocol.Tool
	toolHandlers map[string]tools.HandlerFunc
}

// New creates a server exposing the toolbox tools and the registry prompts.
// t may be nil when requests arrive through HandleRequest only.
func New(t transport.Transport, tb *tools.Toolbox, pr *prompts.PromptRegistry) *Server {
	if pr == nil {
		pr = prompts.NewPromptRegistry()
	}
	s := &Server{
		transport:    t,
		prompts:      pr,
		handlers:     make(map[string]HandlerFunc),
		toolHandlers: make(map[string]tools.HandlerFunc),
	}

	s.handlers[string(protocol.MethodInitialize)] = s.handleInitialize
	s.handlers[string(protocol.MethodPing)] = s.handlePing
	s.handlers[string(protocol.MethodToolsList)] = s.handleToolsList
	s.handlers[string(protocol.MethodToolsCall)] = s.handleToolsCall
	s.handlers[string(protocol.MethodPromptsList)] = s.handlePromptsList
	s.handlers[string(protocol.MethodPromptsGet)] = s.handlePromptsGet

	if tb != nil {
		for _, d := range tb.Definitions() {
			s.RegisterTool(d.Tool, d.Handler)
		}
	}
	return s
}

// RegisterTool registers a tool with the server
func (s *Server) RegisterTool(tool protocol.Tool, handler tools.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, tool)
	s.toolHandlers[tool.Name] = handler
	logger.Debug("Registered tool:", tool.Name)
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]protocol.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Start processes requests until the input closes, ctx is cancelled or the
// process receives SIGINT/SIGTERM
func (s *Server) Start(ctx context.Context) error {
	if s.transport == nil {
		return fmt.Errorf("server has no transport")
	}
	logger.Info("Starting MCP server with", len(s.GetTools()), "tools")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

// ProcessRequests reads requests and writes responses until EOF
func (s *Server) ProcessRequests(ctx context.Context) error {
	for {
		req, err := s.transport.ReadRequest()
		if errors.Is(err, transport.ErrMalformed) {
			if werr := s.transport.WriteResponse(protocol.NewJsonRpcErrorResponse(protocol.ErrParse, err.Error(), nil, nil)); werr != nil {
				return werr
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		// nil means a notification, nothing to send
		resp := s.HandleRequest(ctx, req)
		if resp == nil {
			continue
		}
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// HandleRequest dispatches one request. It returns nil for notifications.
func (s *Server) HandleRequest(ctx context.Context, req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)

	if strings.HasPrefix(req.Method, "notifications/") || req.IsNotification() {
		logger.Debug("Received notification:", req.Method)
		return nil
	}

	s.mu.RLock()
	handler := s.handlers[req.Method]
	s.mu.RUnlock()
	if handler == nil {
		return protocol.NewJsonRpcErrorResponse(protocol.ErrMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), nil, req.ID)
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		code := protocol.ErrToolExecutionFailed
		if tools.IsInvalidInput(err) {
			code = protocol.ErrInvalidParams
		}
		logger.Warn("Request failed", req.Method, err.Error())
		return protocol.NewJsonRpcErrorResponse(code, err.Error(), errorData(err), req.ID)
	}

	resp, err := protocol.NewJsonRpcResponse(result, req.ID)
	if err != nil {
		return protocol.NewJsonRpcErrorResponse(protocol.ErrInternal,
			"Failed to marshal result: "+err.Error(), nil, req.ID)
	}
	logger.Debug("Full response:", string(resp.Result))
	return resp
}

// errorData exposes the failing field of a validation error to the client
func errorData(err error) any {
	var ve *hoops.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// handleInitialize answers with the protocol version the client asked for
func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", tools.ErrInvalidArguments, err)
		}
	}
	version := p.ProtocolVersion
	if version == "" {
		version = protocol.DefaultProtocolVersion
	}
	logger.Info("Client connected", p.ClientInfo.Name, p.ClientInfo.Version, "protocol", version)

	capabilities := map[string]any{}
	if len(s.GetTools()) > 0 {
		capabilities["tools"] = map[string]any{"listChanged": false}
	}
	if len(s.prompts.ListPrompts()) > 0 {
		capabilities["prompts"] = map[string]any{"listChanged": false}
	}

	type serverInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	return struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      serverInfo     `json:"serverInfo"`
	}{
		ProtocolVersion: version,
		Capabilities:    capabilities,
		ServerInfo:      serverInfo{Name: Name, Version: Version + " (model " + hoops.ModelVersion + ")"},
	}, nil
}

func (s *Server) handlePing(ctx context.Context, params json.RawMessage) (any, error) {
	return struct{}{}, nil
}

// handleToolsList handles the tools/list method
func (s *Server) handleToolsList(ctx context.Context, params json.RawMessage) (any, error) {
	return protocol.ToolsResponse{Tools: s.GetTools()}, nil
}

// handleToolsCall runs a tool and returns its output as a JSON text block
func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	var call protocol.ToolCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, fmt.Errorf("%w: invalid tools/call parameters: %v", tools.ErrInvalidArguments, err)
	}

	name := strings.TrimPrefix(call.Name, toolPrefix)
	s.mu.RLock()
	handler := s.toolHandlers[name]
	s.mu.RUnlock()
	if handler == nil {
		return nil, fmt.Errorf("%w: tool not found: %s", tools.ErrInvalidArguments, call.Name)
	}

	logger.Info("Tool call requested for:", name)
	result, err := handler(ctx, call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s result: %w", name, err)
	}
	return protocol.NewTextResult(string(text)), nil
}

// handlePromptsList returns the registered prompts
func (s *Server) handlePromptsList(ctx context.Context, params json.RawMessage) (any, error) {
	return protocol.PromptsListResponse{Prompts: s.prompts.ListPrompts()}, nil
}

// handlePromptsGet renders a prompt with the given arguments
func (s *Server) handlePromptsGet(ctx context.Context, params json.RawMessage) (any, error) {
	var get protocol.PromptsGetParams
	if err := json.Unmarshal(params, &get); err != nil {
		return nil, fmt.Errorf("%w: invalid prompts/get parameters: %v", tools.ErrInvalidArguments, err)
	}
	logger.Info("Prompt get requested for:", get.Name)

	p, err := s.prompts.GetPrompt(get.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tools.ErrInvalidArguments, err)
	}
	text, err := s.prompts.Render(get.Name, get.Arguments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tools.ErrInvalidArguments, err)
	}

	return protocol.PromptsGetResponse{
		Description: p.Description,
		Messages: []protocol.PromptMessage{
			{Role: "user", Content: protocol.PromptContent{Type: "text", Text: text}},
		},
	}, nil
}
