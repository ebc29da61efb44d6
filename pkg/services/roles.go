package services

import (
	"context"

	"github.com/jovannirio-prog/petvizor-engine/pkg/models"
)

// RoleResolver resolves a caller's application role. The identity service
// is an external collaborator; the engine only consumes its result and
// falls back to the base owner role when resolution fails.
type RoleResolver interface {
	Resolve(ctx context.Context, userID, claimedRole string) string
}

// claimsRoleResolver trusts the role claim issued by the identity service.
type claimsRoleResolver struct{}

// NewClaimsRoleResolver creates a resolver over token claims.
func NewClaimsRoleResolver() RoleResolver {
	return claimsRoleResolver{}
}

var _ RoleResolver = claimsRoleResolver{}

func (claimsRoleResolver) Resolve(_ context.Context, _ string, claimedRole string) string {
	switch claimedRole {
	case models.RoleOwner, models.RoleClinic, models.RoleAdmin:
		return claimedRole
	default:
		return models.RoleOwner
	}
}
