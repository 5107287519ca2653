// ABOUTME: Package documentation for the gateway orchestrator
// ABOUTME: Describes component wiring and the serving lifecycle

/*
Package gateway assembles the stormgate server from its parts and runs it.

# Overview

New builds the full request path from a config.Config: the credential
verifier and gate, the upstream weather client, the website prober, the
tool registry with both built-in packs, and the MCP server, all mounted
on a chi router alongside an unauthenticated /health endpoint.

Run blocks serving HTTP until the context is canceled, then performs a
graceful shutdown with a five second deadline. The listener is either a
plain TCP socket on server.http_addr or, when tailscale.enabled is set,
a tsnet node listening inside the tailnet (optionally exposed publicly
via Funnel).
*/
package gateway
