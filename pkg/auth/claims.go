// Package auth provides JWT bearer authentication for petvizor-engine.
// Tokens are validated against the identity service's JWKS endpoints.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
)

// Claims represents the JWT claims issued by the identity service.
// It embeds RegisteredClaims for standard JWT fields (sub, iss, exp, etc.)
// and adds the application role claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	// Role is the application role ("owner", "clinic", "admin"). Optional:
	// an absent or unknown role resolves to the base owner role downstream.
	Role string `json:"user_role,omitempty"`
}

// UserID returns the token subject, which identifies the user.
func (c *Claims) UserID() string {
	return c.Subject
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}
