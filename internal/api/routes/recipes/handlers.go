// Package recipes contains handlers for the recipe resource, including
// favorites, the shopping cart, the shopping-list download and short links.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/api/token"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
	fgJson "github.com/foodgram-app/backend/internal/json"
	"github.com/foodgram-app/backend/internal/shoppinglist"
	"github.com/foodgram-app/backend/internal/shortlink"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// HandleListRecipes godoc
//
//	@Summary	List recipes, newest first.
//	@Tags		Recipes
//
//	@Param		author				query		string	false	"Filter by author id"
//	@Param		tags				query		string	false	"Filter by tag slug, repeatable"
//	@Param		is_favorited		query		string	false	"Only the caller's favorites"
//	@Param		is_in_shopping_cart	query		string	false	"Only recipes in the caller's cart"
//	@Param		limit				query		string	false	"Page size"
//	@Param		offset				query		string	false	"Page offset"
//	@Success	200					{object}	ListRecipesResponse
//	@Router		/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	query := r.URL.Query()
	params := database.ListRecipesParams{
		TagSlugs: query["tags"],
		Limit:    defaultPageLimit,
	}

	if author := query.Get("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			e.Logger.ErrorContext(ctx, "failed to parse author filter", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
			return
		}
		params.AuthorID = pgtype.Int8{Int64: id, Valid: true}
	}

	// The favorites and cart filters are scoped to the caller, so they
	// require an authenticated session.
	if query.Get("is_favorited") == "1" || query.Get("is_in_shopping_cart") == "1" {
		userID, err := token.UserIDFromCtx(ctx)
		if err != nil {
			e.Logger.ErrorContext(ctx, "caller-scoped filter without a session", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.MissingCredentials, "authentication required", requestID)
			return
		}
		if query.Get("is_favorited") == "1" {
			params.FavoritedBy = pgtype.Int8{Int64: userID, Valid: true}
		}
		if query.Get("is_in_shopping_cart") == "1" {
			params.InCartOf = pgtype.Int8{Int64: userID, Valid: true}
		}
	}

	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.ParseInt(limit, 10, 32)
		if err != nil || n < 1 {
			e.Logger.ErrorContext(ctx, "failed to parse limit", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
			return
		}
		params.Limit = int32(min(n, maxPageLimit))
	}
	if offset := query.Get("offset"); offset != "" {
		n, err := strconv.ParseInt(offset, 10, 32)
		if err != nil || n < 0 {
			e.Logger.ErrorContext(ctx, "failed to parse offset", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
			return
		}
		params.Offset = int32(n)
	}

	e.Logger.DebugContext(ctx, "listing recipes")
	recipes, err := e.Database.ListRecipes(ctx, params)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := e.Database.CountRecipes(ctx, database.CountRecipesParams{
		AuthorID:    params.AuthorID,
		TagSlugs:    params.TagSlugs,
		FavoritedBy: params.FavoritedBy,
		InCartOf:    params.InCartOf,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to count recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := ListRecipesResponse{
		Count:   count,
		Recipes: make([]RecipeSummaryResponse, 0, len(recipes)),
	}
	for _, rec := range recipes {
		resp.Recipes = append(resp.Recipes, NewRecipeSummaryResponse(rec))
	}
	writeJSON(w, r, resp)
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe with its tags and ingredient lines.
//	@Tags		Recipes
//
//	@Param		recipeID	path		string	true	"Recipe ID"
//	@Success	200			{object}	RecipeResponse
//	@Failure	404			{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}

	recipe, err := e.Database.GetRecipe(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	tags, err := e.Database.ListRecipeTags(ctx, id)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list recipe tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	lines, err := e.Database.ListRecipeIngredients(ctx, id)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list recipe ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, NewRecipeResponse(recipe, tags, lines))
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//
//	@Accept		json
//	@Param		request	body	CreateRecipeRequest	true	"Create Recipe Request"
//
//	@Success	200	{object}	CreateRecipeResponse
//	@Failure	422	{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/recipes [POST]
//	@Security	AccessTokenCookie
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Decode JSON
	var request CreateRecipeRequest
	e.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.DecodeJSON(&request, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Create the recipe with its tags and ingredient lines atomically.
	tx, err := e.Database.Pool.Begin(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to begin transaction", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()
	qtx := e.Database.WithTx(tx)

	imageURL := pgtype.Text{String: request.ImageURL, Valid: request.ImageURL != ""}
	recipeID, err := qtx.CreateRecipe(ctx, database.CreateRecipeParams{
		AuthorID:    userID,
		Name:        request.Name,
		ImageUrl:    imageURL,
		Text:        request.Text,
		CookingTime: request.CookingTime,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := writeRecipeRelations(ctx, qtx, recipeID, request.TagIDs, request.Ingredients); err != nil {
		e.Logger.ErrorContext(ctx, "failed to attach recipe relations", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		e.Logger.ErrorContext(ctx, "failed to commit transaction", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, CreateRecipeResponse{RecipeID: recipeID})
}

// HandleUpdateRecipe godoc
//
//	@Summary	Update a recipe. Only the author or an admin may update.
//	@Tags		Recipes
//
//	@Accept		json
//	@Param		recipeID	path	string				true	"Recipe ID"
//	@Param		request		body	UpdateRecipeRequest	true	"Update Recipe Request"
//
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Not the recipe author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID} [PATCH]
//	@Security	AccessTokenCookie
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}
	if !requireRecipeAccess(w, r, id, userID, requestID) {
		return
	}

	// Decode JSON
	var request UpdateRecipeRequest
	e.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.DecodeJSON(&request, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Replace the recipe's fields, tags and ingredient lines atomically.
	tx, err := e.Database.Pool.Begin(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to begin transaction", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()
	qtx := e.Database.WithTx(tx)

	imageURL := pgtype.Text{String: request.ImageURL, Valid: request.ImageURL != ""}
	err = qtx.UpdateRecipe(ctx, database.UpdateRecipeParams{
		Name:        request.Name,
		ImageUrl:    imageURL,
		Text:        request.Text,
		CookingTime: request.CookingTime,
		ID:          id,
	})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := qtx.DeleteRecipeTags(ctx, id); err != nil {
		e.Logger.ErrorContext(ctx, "failed to clear recipe tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := qtx.DeleteRecipeIngredients(ctx, id); err != nil {
		e.Logger.ErrorContext(ctx, "failed to clear recipe ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := writeRecipeRelations(ctx, qtx, id, request.TagIDs, request.Ingredients); err != nil {
		e.Logger.ErrorContext(ctx, "failed to attach recipe relations", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		e.Logger.ErrorContext(ctx, "failed to commit transaction", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe. Only the author or an admin may delete.
//	@Tags		Recipes
//
//	@Param		recipeID	path	string	true	"Recipe ID"
//
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Not the recipe author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID} [DELETE]
//	@Security	AccessTokenCookie
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}
	if !requireRecipeAccess(w, r, id, userID, requestID) {
		return
	}

	e.Logger.DebugContext(ctx, "deleting recipe")
	err = e.Database.DeleteRecipe(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleFavorite godoc
//
//	@Summary	Add a recipe to the caller's favorites.
//	@Tags		Recipes, Favorites
//
//	@Param		recipeID	path	string	true	"Recipe ID"
//
//	@Success	201
//	@Failure	400	{object}	apiError.Error	"Already favorited"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID}/favorite [POST]
//	@Security	AccessTokenCookie
func HandleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}
	if !requireRecipeExists(w, r, id, requestID) {
		return
	}

	err = e.Database.AddFavorite(ctx, database.AddFavoriteParams{UserID: userID, RecipeID: id})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "recipe already favorited", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.AlreadyFavorited, "recipe already in favorites", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to add favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleUnfavorite godoc
//
//	@Summary	Remove a recipe from the caller's favorites.
//	@Tags		Recipes, Favorites
//
//	@Param		recipeID	path	string	true	"Recipe ID"
//
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not favorited"
//	@Router		/api/recipes/{recipeID}/favorite [DELETE]
//	@Security	AccessTokenCookie
func HandleUnfavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}

	err = e.Database.RemoveFavorite(ctx, database.RemoveFavoriteParams{UserID: userID, RecipeID: id})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "recipe not favorited", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.NotFavorited, "recipe not in favorites", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to remove favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the caller's shopping cart.
//	@Tags		Recipes, ShoppingCart
//
//	@Param		recipeID	path	string	true	"Recipe ID"
//
//	@Success	201
//	@Failure	400	{object}	apiError.Error	"Already in cart"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID}/shopping_cart [POST]
//	@Security	AccessTokenCookie
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}
	if !requireRecipeExists(w, r, id, requestID) {
		return
	}

	err = e.Database.AddToShoppingCart(ctx, database.AddToShoppingCartParams{UserID: userID, RecipeID: id})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "recipe already in cart", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.AlreadyInCart, "recipe already in shopping cart", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to add to shopping cart", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the caller's shopping cart.
//	@Tags		Recipes, ShoppingCart
//
//	@Param		recipeID	path	string	true	"Recipe ID"
//
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not in cart"
//	@Router		/api/recipes/{recipeID}/shopping_cart [DELETE]
//	@Security	AccessTokenCookie
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}

	err = e.Database.RemoveFromShoppingCart(ctx, database.RemoveFromShoppingCartParams{UserID: userID, RecipeID: id})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "recipe not in cart", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.NotInCart, "recipe not in shopping cart", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to remove from shopping cart", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListCart godoc
//
//	@Summary	List the recipes in the caller's shopping cart.
//	@Tags		Recipes, ShoppingCart
//
//	@Success	200	{object}	ListRecipesResponse
//	@Router		/api/recipes/shopping_cart [GET]
//	@Security	AccessTokenCookie
func HandleListCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipes, err := e.Database.ListShoppingCart(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list shopping cart", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := ListRecipesResponse{
		Count:   int64(len(recipes)),
		Recipes: make([]RecipeSummaryResponse, 0, len(recipes)),
	}
	for _, rec := range recipes {
		resp.Recipes = append(resp.Recipes, NewRecipeSummaryResponse(rec))
	}
	writeJSON(w, r, resp)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary	Download the caller's aggregated shopping list as a text file.
//	@Tags		Recipes, ShoppingCart
//
//	@Produce	plain
//	@Success	200	{string}	string
//	@Router		/api/recipes/download_shopping_cart [GET]
//	@Security	AccessTokenCookie
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	e.Logger.DebugContext(ctx, "collecting cart ingredient lines")
	rows, err := e.Database.CartIngredientLines(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to collect cart ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	lines := make([]shoppinglist.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, shoppinglist.Line{
			Name:   row.Name,
			Unit:   row.MeasurementUnit,
			Amount: row.Amount,
		})
	}
	content := shoppinglist.Render(shoppinglist.Aggregate(lines))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", shoppinglist.Filename))
	if _, err := w.Write([]byte(content)); err != nil {
		e.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleGetLink godoc
//
//	@Summary	Get a short link for a recipe, assigning one if none exists.
//	@Tags		Recipes, ShortLinks
//
//	@Param		recipeID	path		string	true	"Recipe ID"
//	@Param		regenerate	query		string	false	"Force a new token"
//	@Success	200			{object}	GetLinkResponse
//	@Failure	404			{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID}/get-link [GET]
func HandleGetLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := recipeIDFromPath(w, r, requestID)
	if !ok {
		return
	}

	var (
		tok string
		err error
	)
	if r.URL.Query().Get("regenerate") == "true" {
		e.Logger.DebugContext(ctx, "regenerating short link")
		tok, err = e.ShortLinks.RegenerateRecipe(ctx, id)
	} else {
		e.Logger.DebugContext(ctx, "assigning short link")
		tok, err = e.ShortLinks.AssignRecipe(ctx, id)
	}
	if errors.Is(err, shortlink.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to assign short link", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, GetLinkResponse{ShortLink: e.ShortLinks.ShortURL(tok)})
}

// writeRecipeRelations attaches tags and ingredient lines to a recipe.
// Duplicate ingredient lines are stored as-is; aggregation happens at
// shopping-list time.
func writeRecipeRelations(ctx context.Context, qtx *database.Queries, recipeID int64, tagIDs []int64, ingredients []IngredientLineRequest) error {
	for _, tagID := range tagIDs {
		err := qtx.AddRecipeTag(ctx, database.AddRecipeTagParams{RecipeID: recipeID, TagID: tagID})
		if err != nil {
			return fmt.Errorf("adding tag %d: %w", tagID, err)
		}
	}
	for _, line := range ingredients {
		_, err := qtx.AddRecipeIngredient(ctx, database.AddRecipeIngredientParams{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
		if err != nil {
			return fmt.Errorf("adding ingredient %d: %w", line.IngredientID, err)
		}
	}
	return nil
}

// requireRecipeAccess verifies the caller owns the recipe or is an admin,
// writing the error response itself when access is denied.
func requireRecipeAccess(w http.ResponseWriter, r *http.Request, recipeID, userID int64, requestID string) bool {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	owned, err := e.Database.CheckRecipeOwnership(ctx, database.CheckRecipeOwnershipParams{
		ID:       recipeID,
		AuthorID: userID,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to check recipe ownership", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return false
	}
	if owned {
		return true
	}

	// Not the author; admins may still modify.
	user, err := e.Database.GetUserByID(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return false
	}
	if user.Role != database.RoleAdmin {
		e.Logger.ErrorContext(ctx, "user does not own recipe",
			slog.Int64("recipe_id", recipeID), slog.Int64("user_id", userID))
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "not the recipe author", requestID)
		return false
	}
	return true
}

func requireRecipeExists(w http.ResponseWriter, r *http.Request, recipeID int64, requestID string) bool {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	_, err := e.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "recipe not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return false
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return false
	}
	return true
}

func recipeIDFromPath(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	recipeIDQ := recipeID(chi.URLParam(r, "recipeID"))
	if err := recipeIDQ.Validate(); err != nil {
		e.Logger.ErrorContext(ctx, "failed to validate recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return 0, false
	}
	id, _ := strconv.ParseInt(string(recipeIDQ), 10, 64)
	return id, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	resp, err := json.Marshal(v)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		e.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
