package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/model"
)

// Claims is the typed token payload.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and resolves HS256 bearer tokens. Clients treat the
// token as opaque.
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	blocklist domain.TokenBlocklist
	now       func() time.Time
}

// NewTokenManager builds a manager; blocklist may be nil, in which case
// revocation is unavailable.
func NewTokenManager(secret string, ttl time.Duration, blocklist domain.TokenBlocklist) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		blocklist: blocklist,
		now:       time.Now,
	}
}

// Issue signs a new token bound to the user's identity.
func (m *TokenManager) Issue(user *model.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign token", err)
	}
	return t, nil
}

// Resolve validates the token and returns its claims. Malformed, expired,
// foreign and revoked tokens all yield an unauthorized error.
func (m *TokenManager) Resolve(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return nil, domain.NewUnauthorizedError("Invalid token claims")
	}

	if m.blocklist != nil {
		revoked, err := m.blocklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, domain.NewInternalError("failed to check token", err)
		}
		if revoked {
			return nil, domain.NewUnauthorizedError("Token has been revoked")
		}
	}

	return claims, nil
}

// Revoke invalidates the token for the rest of its lifetime.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.blocklist == nil {
		return domain.NewInternalError("token revocation unavailable", errors.New("no blocklist configured"))
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(m.now())
	}
	if err := m.blocklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return domain.NewInternalError("failed to revoke token", err)
	}
	return nil
}
