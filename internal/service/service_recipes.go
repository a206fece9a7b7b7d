package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/models"
)

// recipeService is the concrete implementation of RecipeService.
type recipeService struct {
	recipeRepository store.RecipeRepository
	logger           *logger.Logger
}

func NewRecipeService(recipes store.RecipeRepository, logger *logger.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipes,
		logger:           logger,
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, userID string, includePublic bool) ([]models.Recipe, error) {
	return s.recipeRepository.ListRecipes(ctx, userID, includePublic)
}

// AddRecipe validates and stores a recipe. A recipe needs a name and at
// least one ingredient; instructions may be empty.
func (s *recipeService) AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	log := logger.FromContext(ctx)

	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" || len(recipe.Ingredients) == 0 || recipe.CreatedBy == "" {
		log.Warn().Str("name", recipe.Name).Msg("recipe rejected")
		return models.Recipe{}, ErrInvalidDataProvided
	}

	added, err := s.recipeRepository.AddRecipe(ctx, recipe)
	if err != nil {
		log.Err(err).Msg("error adding recipe")
		return models.Recipe{}, fmt.Errorf("error adding recipe: %w", err)
	}

	log.Info().Str("user_id", added.CreatedBy).Str("recipe_id", added.ID).Bool("public", added.IsPublic).Msg("recipe added")
	return added, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	if recipeID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, userID, recipeID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Str("recipe_id", recipeID).Msg("recipe deleted")
	return nil
}
