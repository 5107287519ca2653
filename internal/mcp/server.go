// ABOUTME: MCP-compatible HTTP server exposing the gateway's tools
// ABOUTME: Implements stateless Streamable HTTP transport with bearer auth

package mcp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stormgate/stormgate/internal/auth"
	"github.com/stormgate/stormgate/internal/tools"
)

// protocolVersion is advertised in initialize responses.
const protocolVersion = "2025-03-26"

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// JSONRPCAuthError is the implementation-defined code for credential
// failures. Auth errors always carry a null id: the gate rejects before
// the body is read, so no correlation id exists yet.
const JSONRPCAuthError = -32000

// MCP-specific types

// MCPToolInfo represents an MCP tool definition.
type MCPToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// MCPListToolsResult is the result for tools/list.
type MCPListToolsResult struct {
	Tools []MCPToolInfo `json:"tools"`
}

// MCPCallToolParams are the params for tools/call.
type MCPCallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Config holds configuration for the MCP server.
type Config struct {
	Registry      *tools.Registry
	Gate          *auth.Gate
	Logger        *slog.Logger
	ServerName    string
	ServerVersion string
}

// Server implements the MCP endpoint. It runs in stateless mode: no session
// identifiers are issued or required, every request is independently
// authenticated and dispatched, and nothing is retained across requests.
type Server struct {
	registry      *tools.Registry
	gate          *auth.Gate
	logger        *slog.Logger
	serverName    string
	serverVersion string
}

// NewServer creates a new MCP server with the given configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Gate == nil {
		return nil, errors.New("auth gate is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.ServerName
	if name == "" {
		name = "stormgate"
	}
	version := cfg.ServerVersion
	if version == "" {
		version = "dev"
	}

	return &Server{
		registry:      cfg.Registry,
		gate:          cfg.Gate,
		logger:        logger,
		serverName:    name,
		serverVersion: version,
	}, nil
}

// RegisterRoutes registers the single MCP endpoint. POST delivers JSON-RPC
// messages; GET opens a server-initiated event stream. No other paths.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/mcp", s.handlePost)
	r.Get("/mcp", s.handleStream)
}

// authorize runs the credential gate. It returns false after writing the
// protocol error envelope when the request must not proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	if err := s.gate.Authorize(r.Header.Get("Authorization")); err != nil {
		s.logger.Warn("request rejected by auth gate", "reason", err, "remote", r.RemoteAddr)
		s.sendError(w, http.StatusUnauthorized, nil, JSONRPCAuthError, err.Error(), nil)
		return false
	}
	return true
}

// handleStream opens an SSE stream for server-initiated messages. The
// gateway never pushes any, so the stream only carries keepalive comments
// until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, ": stream open\n\n"); err != nil {
		return
	}
	flusher.Flush()

	s.logger.Debug("event stream opened", "remote", r.RemoteAddr)
	<-r.Context().Done()
	s.logger.Debug("event stream closed", "remote", r.RemoteAddr)
}

// handlePost processes one JSON-RPC message sent via HTTP POST.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(w, r) {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		s.sendError(w, http.StatusOK, nil, JSONRPCParseError, "failed to read request body", nil)
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		s.sendError(w, http.StatusOK, nil, JSONRPCInvalidRequest, "request body too large", nil)
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.sendError(w, http.StatusOK, nil, JSONRPCParseError, "invalid JSON", nil)
		return
	}

	if req.JSONRPC != "2.0" {
		s.sendError(w, http.StatusOK, req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version", nil)
		return
	}

	isNotification := len(req.ID) == 0 || string(req.ID) == "null"

	s.logger.Debug("MCP request", "method", req.Method, "is_notification", isNotification)

	// Notifications: accept and return HTTP 202 with no body
	if isNotification {
		if strings.HasPrefix(req.Method, "notifications/") {
			s.logger.Debug("accepted MCP notification", "method", req.Method)
		} else {
			s.logger.Warn("received notification for non-notification method", "method", req.Method)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, req)
	case "tools/list":
		s.handleToolsList(w, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	default:
		s.sendError(w, http.StatusOK, req.ID, JSONRPCMethodNotFound, "method not found", nil)
	}
}

// handleInitialize handles the MCP initialize handshake. No session is
// created: the server operates session-free and does not set Mcp-Session-Id.
func (s *Server) handleInitialize(w http.ResponseWriter, req JSONRPCRequest) {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    s.serverName,
			"version": s.serverVersion,
		},
	}
	s.sendResult(w, req.ID, result)
}

// handleToolsList handles tools/list requests.
func (s *Server) handleToolsList(w http.ResponseWriter, req JSONRPCRequest) {
	defs := s.registry.List()

	result := MCPListToolsResult{
		Tools: make([]MCPToolInfo, len(defs)),
	}
	for i, d := range defs {
		result.Tools[i] = MCPToolInfo{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}
	}

	s.logger.Debug("tools/list", "count", len(defs))
	s.sendResult(w, req.ID, result)
}

// handleToolsCall handles tools/call requests: exactly one tool invocation
// per request, response returned verbatim as the reply payload.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	var params MCPCallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendError(w, http.StatusOK, req.ID, JSONRPCInvalidParams, "invalid params", nil)
			return
		}
	}

	if params.Name == "" {
		s.sendError(w, http.StatusOK, req.ID, JSONRPCInvalidParams, "tool name is required", nil)
		return
	}

	// Request ID for log correlation only; nothing outlives the request.
	requestID := uuid.New().String()

	s.logger.Debug("tools/call", "tool_name", params.Name, "request_id", requestID)

	result, err := s.registry.Call(r.Context(), params.Name, params.Arguments, requestID)
	if err != nil {
		s.handleToolError(w, req.ID, params.Name, requestID, err)
		return
	}

	s.logger.Debug("tools/call complete", "tool_name", params.Name, "request_id", requestID)
	s.sendResult(w, req.ID, result)
}

// handleToolError maps dispatch failures onto JSON-RPC error codes.
func (s *Server) handleToolError(w http.ResponseWriter, id json.RawMessage, toolName, requestID string, err error) {
	s.logger.Warn("tool call failed",
		"tool_name", toolName,
		"request_id", requestID,
		"error", err,
	)

	code := JSONRPCInternalError
	message := "tool execution failed"

	switch {
	case errors.Is(err, tools.ErrToolNotFound):
		code = JSONRPCInvalidParams
		message = "tool not found"
	case errors.Is(err, tools.ErrInvalidInput):
		code = JSONRPCInvalidParams
		message = err.Error()
	}

	s.sendError(w, http.StatusOK, id, code, message, nil)
}

// sendResult sends a successful JSON-RPC response.
func (s *Server) sendResult(w http.ResponseWriter, id json.RawMessage, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC response", "error", err)
	}
}

// sendError sends a JSON-RPC error response. A nil id serializes as null.
func (s *Server) sendError(w http.ResponseWriter, status int, id json.RawMessage, code int, message string, data any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("failed to encode JSON-RPC error response", "error", err)
	}
}
