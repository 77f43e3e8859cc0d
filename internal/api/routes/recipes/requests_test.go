package recipes

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestRecipeIDValidate(t *testing.T) {
	tests := []struct {
		name      string
		id        recipeID
		wantError bool
	}{
		{name: "numeric id", id: "42"},
		{name: "empty", id: "", wantError: true},
		{name: "non-numeric", id: "latest", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCreateRecipeRequestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	valid := CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []int64{1, 2},
		Ingredients: []IngredientLineRequest{
			{IngredientID: 1, Amount: 200},
			{IngredientID: 2, Amount: 50},
		},
	}

	tests := []struct {
		name      string
		mutate    func(*CreateRecipeRequest)
		wantError bool
	}{
		{name: "valid request", mutate: func(*CreateRecipeRequest) {}},
		{
			name: "duplicate ingredient lines allowed",
			mutate: func(r *CreateRecipeRequest) {
				r.Ingredients = []IngredientLineRequest{
					{IngredientID: 1, Amount: 100},
					{IngredientID: 1, Amount: 200},
				}
			},
		},
		{name: "missing name", mutate: func(r *CreateRecipeRequest) { r.Name = "" }, wantError: true},
		{name: "missing text", mutate: func(r *CreateRecipeRequest) { r.Text = "" }, wantError: true},
		{name: "zero cooking time", mutate: func(r *CreateRecipeRequest) { r.CookingTime = 0 }, wantError: true},
		{name: "no ingredients", mutate: func(r *CreateRecipeRequest) { r.Ingredients = nil }, wantError: true},
		{
			name: "zero ingredient amount",
			mutate: func(r *CreateRecipeRequest) {
				r.Ingredients = []IngredientLineRequest{{IngredientID: 1, Amount: 0}}
			},
			wantError: true,
		},
		{
			name: "zero ingredient id",
			mutate: func(r *CreateRecipeRequest) {
				r.Ingredients = []IngredientLineRequest{{IngredientID: 0, Amount: 100}}
			},
			wantError: true,
		},
		{
			name:      "malformed image url",
			mutate:    func(r *CreateRecipeRequest) { r.ImageURL = "not a url" },
			wantError: true,
		},
		{name: "no tags allowed", mutate: func(r *CreateRecipeRequest) { r.TagIDs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validate.Struct(req)
			if (err != nil) != tt.wantError {
				t.Errorf("Struct() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
