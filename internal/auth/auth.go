// ABOUTME: Bearer credential gate for inbound MCP requests
// ABOUTME: Inspects the Authorization header before any tool dispatch runs

package auth

import (
	"errors"
	"strings"
)

// Gate failure messages are part of the wire contract: they are returned
// verbatim to clients inside the protocol error envelope.
var (
	// ErrMissingHeader indicates the Authorization header was absent.
	ErrMissingHeader = errors.New("Missing Authorization header")

	// ErrInvalidScheme indicates the header did not use the Bearer scheme.
	ErrInvalidScheme = errors.New("Invalid authentication scheme. Expected Bearer token.")

	// ErrInvalidToken indicates the presented token failed verification.
	ErrInvalidToken = errors.New("Invalid bearer token")
)

// Verifier checks a presented bearer token.
type Verifier interface {
	Verify(token string) error
}

// Gate authorizes requests by their Authorization header. It is stateless
// and safe for concurrent use; the verifier is fixed at construction.
type Gate struct {
	verifier Verifier
}

// NewGate creates a Gate backed by the given verifier.
func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Authorize inspects the raw Authorization header value and returns nil to
// proceed or one of the gate errors. The scheme is the text before the
// first space and must be exactly "Bearer"; the remainder is the token.
// The token value itself is never logged here.
func (g *Gate) Authorize(header string) error {
	if header == "" {
		return ErrMissingHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return ErrInvalidScheme
	}

	if err := g.verifier.Verify(token); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// StaticVerifier accepts exactly one configured token, compared by exact
// string equality. The token is fixed at construction and never mutated.
type StaticVerifier struct {
	token string
}

// NewStaticVerifier creates a verifier for the given credential.
func NewStaticVerifier(token string) *StaticVerifier {
	return &StaticVerifier{token: token}
}

// Verify compares the presented token against the configured credential.
func (v *StaticVerifier) Verify(token string) error {
	if token != v.token {
		return ErrInvalidToken
	}
	return nil
}
