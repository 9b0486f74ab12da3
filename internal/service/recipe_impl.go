package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"recipeapp.com/internal/constants"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/event"
	"recipeapp.com/internal/model"
)

// maxPrice is the exclusive bound of a numeric(5,2) value.
var maxPrice = decimal.New(1, model.PriceMaxDigits-model.PriceDecimalPlaces)

// RecipeServiceImpl implements domain.RecipeService. Every query is filtered
// by owner.
type RecipeServiceImpl struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewRecipeService creates the recipe repository.
func NewRecipeService(db *gorm.DB, bus *event.Bus) *RecipeServiceImpl {
	return &RecipeServiceImpl{db: db, bus: bus}
}

// trimRecipeInput strips surrounding whitespace from the text fields.
func trimRecipeInput(in domain.RecipeInput) domain.RecipeInput {
	for _, f := range []**string{&in.Title, &in.Description, &in.Link} {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
	return in
}

func validateRecipeInput(in domain.RecipeInput, requireTitle bool) error {
	if in.Title == nil {
		if requireTitle {
			return domain.NewBadRequestError("Title is required")
		}
	} else {
		if *in.Title == "" {
			return domain.NewBadRequestError("Title may not be blank")
		}
		if utf8.RuneCountInString(*in.Title) > model.RecipeTitleMaxLen {
			return domain.NewBadRequestError("Title must be at most 255 characters")
		}
	}
	if in.TimeInMinutes != nil && *in.TimeInMinutes < 0 {
		return domain.NewBadRequestError("Time in minutes must not be negative")
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return err
		}
	}
	if in.Link != nil && utf8.RuneCountInString(*in.Link) > model.RecipeLinkMaxLen {
		return domain.NewBadRequestError("Link must be at most 255 characters")
	}
	return nil
}

// validatePrice enforces 5 digits in total with 2 after the point.
func validatePrice(p decimal.Decimal) error {
	if !p.Equal(p.Round(model.PriceDecimalPlaces)) {
		return domain.NewBadRequestError("Price must have no more than 2 decimal places")
	}
	if p.Abs().GreaterThanOrEqual(maxPrice) {
		return domain.NewBadRequestError("Price must have no more than 5 digits in total")
	}
	return nil
}

func applyRecipeInput(recipe *model.Recipe, in domain.RecipeInput) {
	if in.Title != nil {
		recipe.Title = *in.Title
	}
	if in.TimeInMinutes != nil {
		recipe.TimeInMinutes = *in.TimeInMinutes
	}
	if in.Price != nil {
		recipe.Price = in.Price.Round(model.PriceDecimalPlaces)
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}
}

// ListRecipes returns the owner's recipes, newest first.
func (s *RecipeServiceImpl) ListRecipes(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, domain.NewInternalError("failed to fetch recipes", err)
	}
	return recipes, nil
}

// CreateRecipe persists a recipe owned by ownerID.
func (s *RecipeServiceImpl) CreateRecipe(ctx context.Context, ownerID uint, in domain.RecipeInput) (*model.Recipe, error) {
	in = trimRecipeInput(in)
	if err := validateRecipeInput(in, true); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		TimeInMinutes: model.DefaultRecipeMinutes,
		Price:         decimal.Zero,
	}
	applyRecipeInput(recipe, in)
	recipe.UserID = ownerID

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, domain.NewInternalError("failed to create recipe", err)
	}

	slog.Info("RecipeService: recipe created", "recipe_id", recipe.ID, "owner_id", ownerID)
	s.bus.Publish(event.Event{Type: constants.EventRecipeCreated, ActorID: ownerID, SubjectID: recipe.ID})
	return recipe, nil
}

// GetRecipe loads a recipe of the owner. Recipes of other users are
// reported as not found.
func (s *RecipeServiceImpl) GetRecipe(ctx context.Context, ownerID, recipeID uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, ownerID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Recipe not found")
		}
		return nil, domain.NewInternalError("failed to load recipe", err)
	}
	return &recipe, nil
}

// UpdateRecipe changes the supplied fields. A full update additionally
// requires the title.
func (s *RecipeServiceImpl) UpdateRecipe(ctx context.Context, ownerID, recipeID uint, in domain.RecipeInput, partial bool) (*model.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}
	in = trimRecipeInput(in)
	if err := validateRecipeInput(in, !partial); err != nil {
		return nil, err
	}

	applyRecipeInput(recipe, in)
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, domain.NewInternalError("failed to update recipe", err)
	}

	s.bus.Publish(event.Event{Type: constants.EventRecipeUpdated, ActorID: ownerID, SubjectID: recipe.ID})
	return recipe, nil
}

// DeleteRecipe removes a recipe of the owner.
func (s *RecipeServiceImpl) DeleteRecipe(ctx context.Context, ownerID, recipeID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, ownerID).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return domain.NewInternalError("failed to delete recipe", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Recipe not found")
	}

	slog.Info("RecipeService: recipe deleted", "recipe_id", recipeID, "owner_id", ownerID)
	s.bus.Publish(event.Event{Type: constants.EventRecipeDeleted, ActorID: ownerID, SubjectID: recipeID})
	return nil
}

var _ domain.RecipeService = (*RecipeServiceImpl)(nil)
