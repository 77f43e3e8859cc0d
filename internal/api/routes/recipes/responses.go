package recipes

import (
	"time"

	"github.com/foodgram-app/backend/internal/database"
)

// IngredientLineResponse is one ingredient line on a recipe.
type IngredientLineResponse struct {
	IngredientID    int64  `json:"ingredient_id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
}

// TagResponse is a tag attached to a recipe.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RecipeResponse is the full recipe representation.
type RecipeResponse struct {
	ID          int64                    `json:"id"`
	AuthorID    int64                    `json:"author_id"`
	Name        string                   `json:"name"`
	Text        string                   `json:"text"`
	CookingTime int32                    `json:"cooking_time"`
	ImageURL    string                   `json:"image_url,omitempty"`
	Tags        []TagResponse            `json:"tags"`
	Ingredients []IngredientLineResponse `json:"ingredients"`
	PubDate     time.Time                `json:"pub_date"`
}

// RecipeSummaryResponse is the compact representation used in listings.
type RecipeSummaryResponse struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Name        string    `json:"name"`
	CookingTime int32     `json:"cooking_time"`
	ImageURL    string    `json:"image_url,omitempty"`
	PubDate     time.Time `json:"pub_date"`
}

// ListRecipesResponse is a page of recipes.
type ListRecipesResponse struct {
	Count   int64                   `json:"count"`
	Recipes []RecipeSummaryResponse `json:"recipes"`
}

// CreateRecipeResponse returns the id of a newly created recipe.
type CreateRecipeResponse struct {
	RecipeID int64 `json:"recipe_id"`
}

// GetLinkResponse returns a recipe's short link. The field name matches
// the public contract consumed by the frontend.
type GetLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// NewRecipeSummaryResponse converts a database recipe into its listing form.
func NewRecipeSummaryResponse(r database.Recipe) RecipeSummaryResponse {
	resp := RecipeSummaryResponse{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Name:        r.Name,
		CookingTime: r.CookingTime,
		PubDate:     r.PubDate.Time,
	}
	if r.ImageUrl.Valid {
		resp.ImageURL = r.ImageUrl.String
	}
	return resp
}

// NewRecipeResponse assembles the full representation from the recipe row
// and its joined tags and ingredient lines.
func NewRecipeResponse(r database.Recipe, tags []database.Tag, lines []database.ListRecipeIngredientsRow) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Tags:        make([]TagResponse, 0, len(tags)),
		Ingredients: make([]IngredientLineResponse, 0, len(lines)),
		PubDate:     r.PubDate.Time,
	}
	if r.ImageUrl.Valid {
		resp.ImageURL = r.ImageUrl.String
	}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	for _, l := range lines {
		resp.Ingredients = append(resp.Ingredients, IngredientLineResponse{
			IngredientID:    l.IngredientID,
			Name:            l.Name,
			MeasurementUnit: l.MeasurementUnit,
			Amount:          l.Amount,
		})
	}
	return resp
}
