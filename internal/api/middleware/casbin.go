package middleware

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/domain"
)

// CasbinMiddleware checks the current user's role against the policy for the
// request path and method. It must run after RequireAuth.
func CasbinMiddleware(enforcer *casbin.Enforcer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return domain.NewUnauthorizedError("Authentication credentials were not provided")
		}

		// role comes from the stored account, not from the token
		sub := user.Role()
		obj := c.Path()
		act := c.Method()

		permit, err := enforcer.Enforce(sub, obj, act)
		if err != nil {
			return domain.NewInternalError("permission check failed", err)
		}
		if !permit {
			return domain.NewForbiddenError(fmt.Sprintf("Role %s is not allowed to %s %s", sub, act, obj))
		}
		return c.Next()
	}
}
