// ABOUTME: Package documentation for the MCP protocol server
// ABOUTME: Describes the stateless Streamable HTTP transport

/*
Package mcp implements the gateway's Model Context Protocol endpoint.

# Overview

The server speaks JSON-RPC 2.0 over a single HTTP path. POST delivers
client messages (initialize, tools/list, tools/call, notifications);
GET opens a server-sent event stream that stays idle until the client
disconnects, since the gateway never initiates messages.

The transport is stateless. There are no sessions: no Mcp-Session-Id
header is issued or honored, every request authenticates independently
through the bearer gate, and no state survives a request. Identical
requests produce identical responses modulo upstream data.

# Error model

Protocol failures (bad credentials, malformed JSON, unknown methods,
invalid arguments) surface as JSON-RPC error envelopes. Credential
failures use the implementation-defined code -32000 with HTTP 401 and a
null id. Business failures inside a tool never become protocol errors;
they come back as successful tool results whose text describes the
failure, so conversational clients can relay them verbatim.
*/
package mcp
