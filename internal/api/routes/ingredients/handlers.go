// Package ingredients contains handlers for the ingredient catalogue.
package ingredients

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
)

// IngredientResponse is a single catalogue ingredient.
type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ListIngredientsResponse holds the search results.
type ListIngredientsResponse struct {
	Ingredients []IngredientResponse `json:"ingredients"`
}

// NewIngredientResponse converts a database ingredient into its API representation.
func NewIngredientResponse(i database.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

// HandleListIngredients godoc
//
//	@Summary	List ingredients, optionally filtered by name prefix.
//	@Tags		Ingredients
//
//	@Param		name	query		string	false	"Name prefix filter"
//	@Success	200		{object}	ListIngredientsResponse
//	@Router		/api/ingredients [GET]
func HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	namePrefix := r.URL.Query().Get("name")
	e.Logger.DebugContext(ctx, "searching ingredients", slog.String("prefix", namePrefix))
	ingredients, err := e.Database.SearchIngredients(ctx, namePrefix)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to search ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := ListIngredientsResponse{Ingredients: make([]IngredientResponse, 0, len(ingredients))}
	for _, i := range ingredients {
		resp.Ingredients = append(resp.Ingredients, NewIngredientResponse(i))
	}
	writeJSON(w, r, resp)
}

// HandleGetIngredient godoc
//
//	@Summary	Get an ingredient by id.
//	@Tags		Ingredients
//
//	@Param		ingredientID	path		string	true	"Ingredient ID"
//	@Success	200				{object}	IngredientResponse
//	@Failure	404				{object}	apiError.Error	"Ingredient not found"
//	@Router		/api/ingredients/{ingredientID} [GET]
func HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, err := strconv.ParseInt(chi.URLParam(r, "ingredientID"), 10, 64)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to parse ingredient id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}

	ingredient, err := e.Database.GetIngredient(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "ingredient not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, NewIngredientResponse(ingredient))
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
