// Package tools provides the gateway's fixed tool set and its dispatcher.
//
// # Overview
//
// The registry holds exactly three tools, registered at startup from two
// packs:
//
//	builtin:weather - get_alerts, get_forecast (NWS lookups)
//	builtin:website - check_website (liveness probe)
//
// There is no dynamic registration: the set is fixed for the life of the
// process.
//
// # Dispatch
//
// Registry.Call binds one request to one tool invocation. Arguments are
// validated against the tool's schema before the handler runs; validation
// failures never reach handler code. Handlers are stateless functions, so
// concurrent calls need no synchronization.
//
// # Error Shaping
//
// Two disjoint failure classes:
//
//   - Protocol faults (unknown tool, invalid arguments, handler panic)
//     return an error from Call and become JSON-RPC error objects.
//   - Business unavailability (provider unreachable, no data, out of
//     coverage) is returned as a normal Result whose text describes the
//     failure. A third-party outage degrades content, not protocol success.
package tools
