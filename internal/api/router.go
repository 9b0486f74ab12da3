package api

import (
	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/api/middleware"
	"recipeapp.com/internal/engine"
)

// Router registers the business routes under /api
type Router struct {
	app    *fiber.App
	eng    *engine.Engine
	router fiber.Router // /api group
}

func NewRouter(app *fiber.App, eng *engine.Engine) *Router {
	return &Router{
		app: app,
		eng: eng,
	}
}

// RegisterRoutes registers every business route
func (r *Router) RegisterRoutes() {
	requireAuth := middleware.RequireAuth(r.eng.Tokens(), r.eng.UserService())

	userHandler := NewUserHandler(r.eng.UserService(), r.eng.Tokens())
	recipeHandler := NewRecipeHandler(r.eng.RecipeService())
	adminHandler := NewAdminHandler(r.eng.UserService())

	r.router = r.app.Group("/api")

	r.registerUserRoutes(userHandler, requireAuth)
	r.registerRecipeRoutes(recipeHandler, requireAuth)
	r.registerAdminRoutes(adminHandler, requireAuth)
}

func (r *Router) registerUserRoutes(h *UserHandler, requireAuth fiber.Handler) {
	users := r.router.Group("/user")

	// public
	users.Post("/create", h.CreateUser)
	users.Post("/token", h.CreateToken)

	// authenticated
	users.Get("/me", requireAuth, h.GetMe)
	users.Patch("/me", requireAuth, h.UpdateMe)
	users.All("/me", requireAuth, methodNotAllowed("GET, PATCH"))
	users.Post("/logout", requireAuth, h.Logout)
}

func (r *Router) registerRecipeRoutes(h *RecipeHandler, requireAuth fiber.Handler) {
	recipes := r.router.Group("/recipes", requireAuth)
	recipes.Get("/", h.ListRecipes)
	recipes.Post("/", h.CreateRecipe)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Put("/:id", h.UpdateRecipe)
	recipes.Patch("/:id", h.UpdateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
}

func (r *Router) registerAdminRoutes(h *AdminHandler, requireAuth fiber.Handler) {
	admin := r.router.Group("/admin", requireAuth, middleware.CasbinMiddleware(r.eng.Enforcer()))
	admin.Get("/users", h.ListUsers)
	admin.Get("/users/:id", h.GetUser)
	admin.Patch("/users/:id", h.UpdateUser)
	admin.Delete("/users/:id", h.DeleteUser)
}
