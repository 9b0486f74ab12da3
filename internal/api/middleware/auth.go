package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/auth"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/model"
)

const (
	localsUser   = "user"
	localsClaims = "claims"
)

// TokenResolver validates bearer tokens.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Claims, error)
}

// UserLoader loads the account a token is bound to.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// RequireAuth resolves the Authorization header to an active user and stores
// it in the request locals. Accepts "Bearer <token>" and "Token <token>".
func RequireAuth(tokens TokenResolver, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return domain.NewUnauthorizedError("Authentication credentials were not provided")
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || (!strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token")) {
			return domain.NewUnauthorizedError("Invalid authorization header")
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return domain.NewUnauthorizedError("Invalid authorization header")
		}

		claims, err := tokens.Resolve(c.UserContext(), token)
		if err != nil {
			return err
		}

		user, err := users.GetUser(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewUnauthorizedError("User not found")
			}
			return err
		}
		if !user.IsActive {
			return domain.NewUnauthorizedError("User inactive or deleted")
		}

		c.Locals(localsUser, user)
		c.Locals(localsClaims, claims)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localsUser).(*model.User)
	return user
}

// CurrentClaims returns the token claims stored by RequireAuth.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localsClaims).(*auth.Claims)
	return claims
}
