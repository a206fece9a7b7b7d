package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/fitgrit/internal/logger"
	"github.com/MKhiriev/fitgrit/internal/utils"
	"github.com/MKhiriev/fitgrit/models"
)

// recipeRepository is the document-store-backed implementation of
// [RecipeRepository]. Each user owns one recipe document; public recipes are
// mirrored into the shared public document so every user's recipe page can
// list them without scanning all users.
type recipeRepository struct {
	documents DocumentStore
	logger    *logger.Logger
}

// NewRecipeRepository constructs a [RecipeRepository] backed by the provided
// document store and logger.
func NewRecipeRepository(documents DocumentStore, logger *logger.Logger) RecipeRepository {
	logger.Debug().Msg("creating recipe repository")
	return &recipeRepository{
		documents: documents,
		logger:    logger,
	}
}

func (r *recipeRepository) load(ctx context.Context, key string) (models.RecipeDocument, Document, error) {
	doc, err := r.documents.Read(ctx, CollectionRecipes, key)
	if err != nil {
		return models.RecipeDocument{}, Document{}, fmt.Errorf("error reading recipe document: %w", err)
	}

	if !doc.Exists() {
		return models.RecipeDocument{Recipes: []models.Recipe{}}, doc, nil
	}

	var recipeDoc models.RecipeDocument
	if err := json.Unmarshal(doc.Data, &recipeDoc); err != nil {
		return models.RecipeDocument{}, Document{}, fmt.Errorf("%w: recipes/%s: %w", ErrMalformedDocument, key, err)
	}
	if recipeDoc.Recipes == nil {
		recipeDoc.Recipes = []models.Recipe{}
	}

	return recipeDoc, doc, nil
}

func (r *recipeRepository) save(ctx context.Context, key string, recipeDoc models.RecipeDocument, doc Document) error {
	data, err := json.Marshal(recipeDoc)
	if err != nil {
		return fmt.Errorf("error serializing recipe document: %w", err)
	}

	doc.Data = data
	if err := r.documents.Write(ctx, CollectionRecipes, key, doc); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("recipe document write failed")
		return fmt.Errorf("error writing recipe document: %w", err)
	}

	return nil
}

// ListRecipes returns the user's own recipes, followed by every public
// recipe when includePublic is set.
func (r *recipeRepository) ListRecipes(ctx context.Context, userID string, includePublic bool) ([]models.Recipe, error) {
	own, _, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes := own.Recipes
	if includePublic {
		public, _, err := r.load(ctx, PublicRecipesKey)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, public.Recipes...)
	}

	return recipes, nil
}

// AddRecipe stores the recipe in the owner's document with a fresh id and
// creation timestamp; public recipes are appended to the shared document as
// well. The two writes are independent — there is no cross-document
// transaction.
func (r *recipeRepository) AddRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	recipe.ID = utils.RandomHex(8)
	recipe.CreatedAt = time.Now()

	own, ownDoc, err := r.load(ctx, recipe.CreatedBy)
	if err != nil {
		return models.Recipe{}, err
	}

	own.Recipes = append(own.Recipes, recipe)
	if err := r.save(ctx, recipe.CreatedBy, own, ownDoc); err != nil {
		return models.Recipe{}, err
	}

	if recipe.IsPublic {
		public, publicDoc, err := r.load(ctx, PublicRecipesKey)
		if err != nil {
			return models.Recipe{}, err
		}

		public.Recipes = append(public.Recipes, recipe)
		if err := r.save(ctx, PublicRecipesKey, public, publicDoc); err != nil {
			return models.Recipe{}, err
		}
	}

	return recipe, nil
}

// DeleteRecipe removes the recipe from the owner's document and, when it was
// public, from the shared document. Returns [ErrEntryNotFound] when the
// owner does not have the recipe.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	own, ownDoc, err := r.load(ctx, userID)
	if err != nil {
		return err
	}

	wasPublic := false
	remaining := make([]models.Recipe, 0, len(own.Recipes))
	for _, recipe := range own.Recipes {
		if recipe.ID == recipeID {
			wasPublic = recipe.IsPublic
			continue
		}
		remaining = append(remaining, recipe)
	}

	if len(remaining) == len(own.Recipes) {
		return ErrEntryNotFound
	}

	own.Recipes = remaining
	if err := r.save(ctx, userID, own, ownDoc); err != nil {
		return err
	}

	if wasPublic {
		public, publicDoc, err := r.load(ctx, PublicRecipesKey)
		if err != nil {
			return err
		}

		kept := make([]models.Recipe, 0, len(public.Recipes))
		for _, recipe := range public.Recipes {
			if recipe.ID != recipeID {
				kept = append(kept, recipe)
			}
		}

		public.Recipes = kept
		if err := r.save(ctx, PublicRecipesKey, public, publicDoc); err != nil {
			return err
		}
	}

	return nil
}
