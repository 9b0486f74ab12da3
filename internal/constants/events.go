package constants

// Domain event types
const (
	EventUserCreated = "user.created"
	EventUserDeleted = "user.deleted"

	EventRecipeCreated = "recipe.created"
	EventRecipeUpdated = "recipe.updated"
	EventRecipeDeleted = "recipe.deleted"
)
