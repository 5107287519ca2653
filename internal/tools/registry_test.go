// ABOUTME: Tests for tool registration and dispatch
// ABOUTME: Covers collisions, validation rejection, and panic recovery

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPack(id string, tools ...*Tool) *Pack {
	return &Pack{ID: id, Tools: tools}
}

func echoTool(name string) *Tool {
	return &Tool{
		Definition: Definition{Name: name, Description: "echoes input", InputSchema: json.RawMessage(`{"type":"object"}`)},
		Handler: func(_ context.Context, input json.RawMessage) (Result, error) {
			return Text(string(input)), nil
		},
	}
}

func TestRegistry_RegisterAndList(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.RegisterPack(newTestPack("p1", echoTool("a"), echoTool("b"))))
	require.NoError(t, r.RegisterPack(newTestPack("p2", echoTool("c"))))

	defs := r.List()
	require.Len(t, defs, 3)
	assert.Equal(t, "a", defs[0].Name)
	assert.Equal(t, "b", defs[1].Name)
	assert.Equal(t, "c", defs[2].Name)
}

func TestRegistry_Collision(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.RegisterPack(newTestPack("p1", echoTool("dup"))))

	err := r.RegisterPack(newTestPack("p2", echoTool("dup")))
	assert.ErrorIs(t, err, ErrToolCollision)
}

func TestRegistry_CallUnknownTool(t *testing.T) {
	r := NewRegistry(slog.Default())

	_, err := r.Call(context.Background(), "nope", nil, "req-1")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestRegistry_CallValidationRejects(t *testing.T) {
	r := NewRegistry(slog.Default())
	tool := echoTool("strict")
	tool.Validate = func(json.RawMessage) error { return errors.New("bad field") }
	require.NoError(t, r.RegisterPack(newTestPack("p", tool)))

	_, err := r.Call(context.Background(), "strict", json.RawMessage(`{}`), "req-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad field")
}

func TestRegistry_CallEmptyInputBecomesObject(t *testing.T) {
	r := NewRegistry(slog.Default())
	require.NoError(t, r.RegisterPack(newTestPack("p", echoTool("echo"))))

	res, err := r.Call(context.Background(), "echo", nil, "req-1")
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.JSONEq(t, "{}", res.Content[0].Text)
}

func TestRegistry_CallRecoversPanic(t *testing.T) {
	r := NewRegistry(slog.Default())
	tool := &Tool{
		Definition: Definition{Name: "boom"},
		Handler: func(context.Context, json.RawMessage) (Result, error) {
			panic("handler bug")
		},
	}
	require.NoError(t, r.RegisterPack(newTestPack("p", tool)))

	_, err := r.Call(context.Background(), "boom", json.RawMessage(`{}`), "req-1")
	assert.ErrorIs(t, err, ErrExecutionFailed)
}

func TestRegistry_CallHandlerError(t *testing.T) {
	r := NewRegistry(slog.Default())
	tool := &Tool{
		Definition: Definition{Name: "fail"},
		Handler: func(context.Context, json.RawMessage) (Result, error) {
			return Result{}, errors.New("unexpected state")
		},
	}
	require.NoError(t, r.RegisterPack(newTestPack("p", tool)))

	_, err := r.Call(context.Background(), "fail", json.RawMessage(`{}`), "req-1")
	assert.ErrorIs(t, err, ErrExecutionFailed)
}
