package auth

import (
	"context"

	"dealership/internal/models"
)

type claimsKey struct{}

// WithClaims publishes a verified identity to downstream handlers.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the identity published by the authentication gate, or
// nil for an anonymous request.
func ClaimsFrom(ctx context.Context) *models.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*models.Claims)
	return claims
}

// IsAuthenticated reports whether the request carries a verified identity.
func IsAuthenticated(ctx context.Context) bool {
	return ClaimsFrom(ctx) != nil
}
