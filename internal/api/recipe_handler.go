package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"recipeapp.com/internal/api/middleware"
	"recipeapp.com/internal/domain"
)

// RecipeHandler serves the owner-scoped recipe resource. Lists use the
// summary shape; every other action answers with the detail shape.
type RecipeHandler struct {
	recipes domain.RecipeService
}

func NewRecipeHandler(recipes domain.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// recipeRequest has no owner field; any owner sent by the client is ignored.
type recipeRequest struct {
	Title         *string          `json:"title"`
	TimeInMinutes *int             `json:"time_in_minutes"`
	Price         *decimal.Decimal `json:"price"`
	Description   *string          `json:"description"`
	Link          *string          `json:"link"`
}

func (r recipeRequest) toInput() domain.RecipeInput {
	return domain.RecipeInput{
		Title:         r.Title,
		TimeInMinutes: r.TimeInMinutes,
		Price:         r.Price,
		Description:   r.Description,
		Link:          r.Link,
	}
}

// ListRecipes lists the caller's recipes, newest first
// GET /api/recipes
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipes.ListRecipes(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(newRecipeSummaries(recipes))
}

// CreateRecipe creates a recipe owned by the caller
// POST /api/recipes
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var req recipeRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	recipe, err := h.recipes.CreateRecipe(c.UserContext(), middleware.CurrentUser(c).ID, req.toInput())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newRecipeDetail(recipe))
}

// GetRecipe returns one of the caller's recipes
// GET /api/recipes/:id
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "Recipe not found")
	if err != nil {
		return handleError(c, err)
	}

	recipe, err := h.recipes.GetRecipe(c.UserContext(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// UpdateRecipe replaces (PUT) or patches (PATCH) one of the caller's recipes
// PUT /api/recipes/:id
// PATCH /api/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "Recipe not found")
	if err != nil {
		return handleError(c, err)
	}

	var req recipeRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	partial := c.Method() == fiber.MethodPatch
	recipe, err := h.recipes.UpdateRecipe(c.UserContext(), middleware.CurrentUser(c).ID, id, req.toInput(), partial)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(newRecipeDetail(recipe))
}

// DeleteRecipe deletes one of the caller's recipes
// DELETE /api/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "Recipe not found")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.recipes.DeleteRecipe(c.UserContext(), middleware.CurrentUser(c).ID, id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
