package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mesadeayuda/helpdesk/internal/domain"
	apperrors "github.com/mesadeayuda/helpdesk/pkg/errorutil"
)

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireStaff ensures the principal may claim or complete tickets.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.UserRoleStaff, domain.UserRoleAdmin)
}
