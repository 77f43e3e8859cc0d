package recipes

import (
	"fmt"
	"strconv"
)

type recipeID string

func (r recipeID) Validate() error {
	if r == "" {
		return fmt.Errorf("recipe id is required")
	}
	if _, err := strconv.ParseInt(string(r), 10, 64); err != nil {
		return fmt.Errorf("recipe id must be an integer: %w", err)
	}
	return nil
}

// IngredientLineRequest is one ingredient entry on a recipe. The same
// ingredient may appear more than once; amounts are kept as separate lines.
type IngredientLineRequest struct {
	IngredientID int64 `json:"ingredient_id" validate:"required,min=1"`
	Amount       int32 `json:"amount" validate:"required,min=1"`
}

// CreateRecipeRequest creates a recipe owned by the authenticated user.
type CreateRecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=256"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int32                   `json:"cooking_time" validate:"required,min=1"`
	ImageURL    string                  `json:"image_url,omitempty" validate:"omitempty,url"`
	TagIDs      []int64                 `json:"tag_ids" validate:"dive,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// UpdateRecipeRequest replaces a recipe's fields, tags and ingredient lines.
type UpdateRecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=256"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int32                   `json:"cooking_time" validate:"required,min=1"`
	ImageURL    string                  `json:"image_url,omitempty" validate:"omitempty,url"`
	TagIDs      []int64                 `json:"tag_ids" validate:"dive,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
}
