package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"recipeapp.com/internal/model"
)

// ===========================
// Account management
// ===========================

// UserFields are the optional attributes assigned as given on creation.
type UserFields struct {
	Name string
}

// ProfileUpdate holds the self-service profile changes. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	Password *string
}

// AdminUserUpdate holds the staff-only account changes. Nil means unchanged.
type AdminUserUpdate struct {
	Name     *string
	IsActive *bool
	IsStaff  *bool
}

// UserService creates and maintains user accounts.
type UserService interface {
	// Create a normal account
	CreateUser(ctx context.Context, email, password string, fields UserFields) (*model.User, error)
	// Create an account with staff and superuser flags set
	CreateSuperuser(ctx context.Context, email, password string) (*model.User, error)
	// Check credentials and record the login
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)

	// Admin operations
	ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
	AdminUpdateUser(ctx context.Context, id uint, update AdminUserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// ===========================
// Recipes
// ===========================

// RecipeInput carries client-supplied recipe fields. Nil means absent.
// The owner is never taken from input; it is always the caller.
type RecipeInput struct {
	Title         *string
	TimeInMinutes *int
	Price         *decimal.Decimal
	Description   *string
	Link          *string
}

// RecipeService is the owner-scoped recipe repository. A recipe owned by
// someone else is reported exactly like a missing one.
type RecipeService interface {
	// Recipes of the owner, newest first
	ListRecipes(ctx context.Context, ownerID uint) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, ownerID uint, in RecipeInput) (*model.Recipe, error)
	GetRecipe(ctx context.Context, ownerID, recipeID uint) (*model.Recipe, error)
	// partial=false replaces every writable field and requires a title
	UpdateRecipe(ctx context.Context, ownerID, recipeID uint, in RecipeInput, partial bool) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID, recipeID uint) error
}

// ===========================
// Tokens
// ===========================

// TokenBlocklist remembers revoked token ids until they would have expired.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
