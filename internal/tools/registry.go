// ABOUTME: Thread-safe registry and dispatcher for the gateway's tools
// ABOUTME: Validates arguments and shields callers from handler panics

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrToolNotFound indicates the requested tool is not registered.
var ErrToolNotFound = errors.New("tool not found")

// ErrToolCollision indicates a tool name is already registered.
var ErrToolCollision = errors.New("tool name collision")

// ErrInvalidInput indicates the tool arguments failed schema validation.
var ErrInvalidInput = errors.New("invalid arguments")

// ErrExecutionFailed indicates the handler faulted unexpectedly.
var ErrExecutionFailed = errors.New("tool execution failed")

// Content is a single text block in a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Result is the uniform response envelope every handler returns. Recoverable
// business failures (provider unavailable, no data) are reported as normal
// content, never as errors.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text builds a Result holding a single text block.
func Text(s string) Result {
	return Result{Content: []Content{{Type: "text", Text: s}}}
}

// Definition describes a tool to clients.
type Definition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Handler executes a tool. Handlers hold no per-request state; every
// invocation is independent.
type Handler func(ctx context.Context, input json.RawMessage) (Result, error)

// Tool bundles a definition with its validator and handler. Validate runs
// before Handler and rejects malformed arguments without invoking it.
type Tool struct {
	Definition Definition
	Validate   func(input json.RawMessage) error
	Handler    Handler
}

// Pack is a named collection of tools registered together.
type Pack struct {
	ID    string
	Tools []*Tool
}

// Registry maintains the fixed set of tools and dispatches calls to them.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*Tool
	order  []string
	logger *slog.Logger
}

// NewRegistry creates a new Registry instance.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
	}
}

// RegisterPack registers every tool in the pack.
// Returns ErrToolCollision if any tool name already exists.
func (r *Registry) RegisterPack(p *Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range p.Tools {
		if _, exists := r.tools[t.Definition.Name]; exists {
			return fmt.Errorf("%w: %s", ErrToolCollision, t.Definition.Name)
		}
	}
	for _, t := range p.Tools {
		r.tools[t.Definition.Name] = t
		r.order = append(r.order, t.Definition.Name)
	}

	r.logger.Info("registered tool pack", "pack_id", p.ID, "tools", len(p.Tools))
	return nil
}

// List returns the registered tool definitions in registration order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Call validates and executes the named tool. The request ID is used only
// for log correlation. A panicking handler is recovered and reported as
// ErrExecutionFailed so a single bad request cannot take the process down.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage, requestID string) (res Result, err error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if len(input) == 0 || string(input) == "null" {
		input = json.RawMessage("{}")
	}

	if tool.Validate != nil {
		if verr := tool.Validate(input); verr != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, verr)
		}
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tool handler panicked",
				"tool_name", name,
				"request_id", requestID,
				"panic", p,
			)
			res = Result{}
			err = fmt.Errorf("%w: internal fault", ErrExecutionFailed)
		}
	}()

	r.logger.Debug("→ dispatching tool call", "tool_name", name, "request_id", requestID)
	res, err = tool.Handler(ctx, input)
	if err != nil {
		r.logger.Warn("tool handler error", "tool_name", name, "request_id", requestID, "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	r.logger.Debug("← tool call complete", "tool_name", name, "request_id", requestID)
	return res, nil
}
