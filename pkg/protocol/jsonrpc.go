package protocol

import (
	"encoding/json"
	"fmt"
)

/**
https://modelcontextprotocol.info/specification/draft/basic/lifecycle/
Flow:
	The client starts and finds hoops-mcp in its mcp.json
	It sends 'initialize': {"method":"initialize","params":{"protocolVersion":"2024-11-05",...},"jsonrpc":"2.0","id":0}
	We answer with our capabilities (tools, prompts) and server info
	The client sends the 'notifications/initialized' notification, which gets no response
	It then lists tools and prompts: {"method":"tools/list","params":{},"jsonrpc":"2.0","id":1}
	and calls them: {"method":"tools/call","params":{"name":"hoops_predict","arguments":{...}},"jsonrpc":"2.0","id":2}
*/

// MethodType defines the possible JSON-RPC method types
type MethodType string

// Method types for JSON-RPC requests
const (
	MethodInitialize  MethodType = "initialize"
	MethodInitialized MethodType = "notifications/initialized"
	MethodPing        MethodType = "ping"
	MethodToolsList   MethodType = "tools/list"
	MethodToolsCall   MethodType = "tools/call"
	MethodPromptsList MethodType = "prompts/list"
	MethodPromptsGet  MethodType = "prompts/get"
)

// Version is the JSON-RPC protocol version
const JsonRpcVersion = "2.0"

// DefaultProtocolVersion is offered when the client does not ask for one
const DefaultProtocolVersion = "2024-11-05"

// Request represents a JSON-RPC 2.0 request object
type JsonRpcRequest struct {
	// A String specifying the version of the JSON-RPC protocol. MUST be exactly "2.0".
	JsonRPC string `json:"jsonrpc"`

	// A String containing the name of the method to be invoked.
	Method string `json:"method"`

	// A Structured value that holds the parameter values to be used during the invocation of the method.
	// This member MAY be omitted.
	Params json.RawMessage `json:"params,omitempty"`

	// An identifier established by the Client that MUST contain a String, Number, or NULL value if included.
	// If it is not included it is assumed to be a notification.
	ID any `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no id
func (r *JsonRpcRequest) IsNotification() bool {
	return r.ID == nil
}

// Response represents a JSON-RPC 2.0 response object
type JsonRpcResponse struct {
	JsonRPC string `json:"jsonrpc"`

	// Present on success only
	Result json.RawMessage `json:"result,omitempty"`

	// Present on error only
	Error *JsonRpcError `json:"error,omitempty"`

	// Same as the request id, null if the request id could not be read
	ID any `json:"id"`
}

// Error represents a JSON-RPC 2.0 error object
type JsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ToolProperty is one JSON schema property of a tool input. Object and array
// properties may describe their members.
type ToolProperty struct {
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Enum        []string                `json:"enum,omitempty"`
	Items       *ToolProperty           `json:"items,omitempty"`
	Properties  map[string]ToolProperty `json:"properties,omitempty"`
}

type InputSchema struct {
	Type                 string                  `json:"type"`
	Properties           map[string]ToolProperty `json:"properties,omitempty"`
	Required             []string                `json:"required"`
	AdditionalProperties bool                    `json:"additionalProperties"`
}

// Tool represents a tool that can be invoked by the client
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ToolsResponse represents the response to a tools/list request
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// ToolCallParams are the params of a tools/call request
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ContentItem is one block of a tool result
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult wraps tool output the way MCP clients expect it
type ToolResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// NewTextResult builds a single text block result
func NewTextResult(text string) *ToolResult {
	return &ToolResult{Content: []ContentItem{{Type: "text", Text: text}}}
}

// PromptArgument describes one {{variable}} of a prompt
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Prompt is a stored prompt template
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
	Content     string           `json:"-"`
}

type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// PromptsListResponse is the result of prompts/list
type PromptsListResponse struct {
	Prompts []Prompt `json:"prompts"`
}

// PromptsGetParams are the params of a prompts/get request
type PromptsGetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// PromptsGetResponse is the result of prompts/get
type PromptsGetResponse struct {
	Description string          `json:"description"`
	Messages    []PromptMessage `json:"messages"`
}

// Standard error codes defined by the JSON-RPC 2.0 specification
const (
	// Parse error: Invalid JSON was received by the server.
	ErrParse = -32700

	// Invalid Request: The JSON sent is not a valid Request object.
	ErrInvalidRequest = -32600

	// Method not found: The method does not exist / is not available.
	ErrMethodNotFound = -32601

	// Invalid params: Invalid method parameter(s).
	ErrInvalidParams = -32602

	// Internal error: Internal JSON-RPC error.
	ErrInternal = -32603

	// Tool execution failed, from the -32000 to -32099 server range
	ErrToolExecutionFailed = -32000
)

// Error returns a string representation of the error
func (e *JsonRpcError) Error() string {
	return fmt.Sprintf("jsonrpc error: code=%d message=%s", e.Code, e.Message)
}

// NewJsonRpcRequest creates a new JSON-RPC 2.0 request
func NewJsonRpcRequest(method string, params any, id any) (*JsonRpcRequest, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		paramsJSON = b
	}

	return &JsonRpcRequest{
		JsonRPC: JsonRpcVersion,
		Method:  method,
		Params:  paramsJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcNotification creates a request without an ID
func NewJsonRpcNotification(method string, params any) (*JsonRpcRequest, error) {
	return NewJsonRpcRequest(method, params, nil)
}

// NewJsonRpcResponse creates a new JSON-RPC 2.0 success response
func NewJsonRpcResponse(result any, id any) (*JsonRpcResponse, error) {
	var resultJSON json.RawMessage
	if result != nil {
		b, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		resultJSON = b
	}

	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Result:  resultJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcErrorResponse creates a new JSON-RPC 2.0 error response
func NewJsonRpcErrorResponse(code int, message string, data any, id any) *JsonRpcResponse {
	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Error: &JsonRpcError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// ParseJsonRpcRequest parses a JSON-RPC 2.0 request from raw JSON
func ParseJsonRpcRequest(data []byte) (*JsonRpcRequest, error) {
	var req JsonRpcRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.JsonRPC != JsonRpcVersion {
		return nil, fmt.Errorf("invalid JSON-RPC version: %s", req.JsonRPC)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("missing method")
	}
	return &req, nil
}

// ParseJsonRpcResponse parses a JSON-RPC 2.0 response from raw JSON
func ParseJsonRpcResponse(data []byte) (*JsonRpcResponse, error) {
	var resp JsonRpcResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if resp.JsonRPC != JsonRpcVersion {
		return nil, fmt.Errorf("invalid JSON-RPC version: %s", resp.JsonRPC)
	}
	return &resp, nil
}

// String returns a JSON string representation of the request
func (r *JsonRpcRequest) String() string {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling request: %v", err)
	}
	return string(bytes)
}

// String returns a JSON string representation of the response
func (r *JsonRpcResponse) String() string {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling response: %v", err)
	}
	return string(bytes)
}
