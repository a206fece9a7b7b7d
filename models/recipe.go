package models

import "time"

// Recipe is a user-authored recipe. Private recipes live in the owner's
// recipe document; public ones are additionally listed in the shared public
// recipe document visible to every user.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Ingredients  []string           `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Nutrition    map[string]float64 `json:"nutrition,omitempty"`
	CreatedBy    string             `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	IsPublic     bool               `json:"is_public"`
}

// RecipeDocument is the persisted shape of a recipe file.
type RecipeDocument struct {
	Recipes []Recipe `json:"recipes"`
}
