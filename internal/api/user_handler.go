package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/api/middleware"
	"recipeapp.com/internal/auth"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/model"
)

// TokenIssuer issues and revokes bearer tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// UserHandler serves registration, token and profile endpoints.
type UserHandler struct {
	users  domain.UserService
	tokens TokenIssuer
}

func NewUserHandler(users domain.UserService, tokens TokenIssuer) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

type createUserRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type updateMeRequest struct {
	Name     *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
}

// CreateUser registers a new account
// POST /api/user/create
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return handleError(c, domain.NewBadRequestError("Name is required"))
	}

	user, err := h.users.CreateUser(c.UserContext(), req.Email, req.Password, domain.UserFields{Name: req.Name})
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// CreateToken exchanges credentials for a token
// POST /api/user/token
func (h *UserHandler) CreateToken(c *fiber.Ctx) error {
	var req tokenRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	user, err := h.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(TokenResponse{Token: token})
}

// GetMe returns the caller's profile
// GET /api/user/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(newUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe changes the caller's name and/or password
// PATCH /api/user/me
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req updateMeRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).ID, domain.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(newUserResponse(user))
}

// Logout revokes the presented token
// POST /api/user/logout
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.tokens.Revoke(c.UserContext(), middleware.CurrentClaims(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
