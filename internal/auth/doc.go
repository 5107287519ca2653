// Package auth verifies bearer credentials on inbound requests.
//
// # Overview
//
// Every request passes the Gate before any tool logic runs. The Gate parses
// the Authorization header and delegates token verification to a Verifier:
//
//   - StaticVerifier: exact string equality against the configured token
//     (the default mode)
//   - JWTVerifier: HS256-signed JWTs with a subject claim (auth.mode "jwt")
//
// # Failure Modes
//
// Three distinct failures, reported verbatim to the client:
//
//	missing header   -> "Missing Authorization header"
//	wrong scheme     -> "Invalid authentication scheme. Expected Bearer token."
//	bad token        -> "Invalid bearer token"
//
// All three short-circuit dispatch and surface as a protocol-level error
// with HTTP status 401.
package auth
