// Package admin contains role-gated handlers for managing users, tags
// and the ingredient catalogue. Routes in this package sit behind the
// admin authorization middleware.
package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/argon2id"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
	fgJson "github.com/foodgram-app/backend/internal/json"
	"github.com/foodgram-app/backend/internal/password"
)

// HandleCreateUser godoc
//
//	@Summary	Create a user with an explicit role.
//	@Tags		Admin
//
//	@Accept		json
//	@Param		request	body	CreateUserRequest	true	"Create User Request"
//
//	@Success	201
//	@Failure	409	{object}	apiError.Error	"Status Conflict"
//	@Router		/api/admin/users [POST]
//	@Security	AccessTokenCookie
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	var request CreateUserRequest
	if !decodeAndValidate(w, r, &request, requestID) {
		return
	}

	if err := password.ValidatePassword(request.Password); err != nil {
		e.Logger.ErrorContext(ctx, "failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID)
		return
	}
	hash, err := argon2id.EncodeHash(request.Password, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	e.Logger.DebugContext(ctx, "creating user", slog.String("role", request.Role))
	_, err = e.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
		Role:         database.Role(request.Role),
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "user already exists", slog.Any("error", err))
		if strings.Contains(err.Error(), "username") {
			_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
			return
		}
		_ = apiError.EncodeError(w, apiError.EmailConflict, "email already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleCreateTag godoc
//
//	@Summary	Create a tag.
//	@Tags		Admin, Tags
//
//	@Accept		json
//	@Param		request	body	CreateTagRequest	true	"Create Tag Request"
//
//	@Success	201
//	@Failure	409	{object}	apiError.Error	"Slug already in use"
//	@Router		/api/admin/tags [POST]
//	@Security	AccessTokenCookie
func HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	var request CreateTagRequest
	if !decodeAndValidate(w, r, &request, requestID) {
		return
	}

	e.Logger.DebugContext(ctx, "creating tag", slog.String("slug", request.Slug))
	_, err := e.Database.CreateTag(ctx, database.CreateTagParams{
		Name: request.Name,
		Slug: request.Slug,
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "tag slug already in use", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.TagConflict, "tag slug already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleUpdateTag godoc
//
//	@Summary	Update a tag.
//	@Tags		Admin, Tags
//
//	@Accept		json
//	@Param		tagID	path	string				true	"Tag ID"
//	@Param		request	body	UpdateTagRequest	true	"Update Tag Request"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Tag not found"
//	@Router		/api/admin/tags/{tagID} [PATCH]
//	@Security	AccessTokenCookie
func HandleUpdateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := idFromPath(w, r, "tagID", requestID)
	if !ok {
		return
	}
	var request UpdateTagRequest
	if !decodeAndValidate(w, r, &request, requestID) {
		return
	}

	err := e.Database.UpdateTag(ctx, database.UpdateTagParams{
		Name: request.Name,
		Slug: request.Slug,
		ID:   id,
	})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "tag not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "tag slug already in use", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.TagConflict, "tag slug already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to update tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteTag godoc
//
//	@Summary	Delete a tag.
//	@Tags		Admin, Tags
//
//	@Param		tagID	path	string	true	"Tag ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Tag not found"
//	@Router		/api/admin/tags/{tagID} [DELETE]
//	@Security	AccessTokenCookie
func HandleDeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := idFromPath(w, r, "tagID", requestID)
	if !ok {
		return
	}

	err := e.Database.DeleteTag(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "tag not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to delete tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateIngredient godoc
//
//	@Summary	Add an ingredient to the catalogue.
//	@Tags		Admin, Ingredients
//
//	@Accept		json
//	@Param		request	body	CreateIngredientRequest	true	"Create Ingredient Request"
//
//	@Success	201
//	@Router		/api/admin/ingredients [POST]
//	@Security	AccessTokenCookie
func HandleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	var request CreateIngredientRequest
	if !decodeAndValidate(w, r, &request, requestID) {
		return
	}

	e.Logger.DebugContext(ctx, "creating ingredient", slog.String("name", request.Name))
	_, err := e.Database.CreateIngredient(ctx, database.CreateIngredientParams{
		Name:            request.Name,
		MeasurementUnit: request.MeasurementUnit,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleUpdateIngredient godoc
//
//	@Summary	Update a catalogue ingredient.
//	@Tags		Admin, Ingredients
//
//	@Accept		json
//	@Param		ingredientID	path	string					true	"Ingredient ID"
//	@Param		request			body	UpdateIngredientRequest	true	"Update Ingredient Request"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Ingredient not found"
//	@Router		/api/admin/ingredients/{ingredientID} [PATCH]
//	@Security	AccessTokenCookie
func HandleUpdateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := idFromPath(w, r, "ingredientID", requestID)
	if !ok {
		return
	}
	var request UpdateIngredientRequest
	if !decodeAndValidate(w, r, &request, requestID) {
		return
	}

	err := e.Database.UpdateIngredient(ctx, database.UpdateIngredientParams{
		Name:            request.Name,
		MeasurementUnit: request.MeasurementUnit,
		ID:              id,
	})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "ingredient not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to update ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteIngredient godoc
//
//	@Summary	Delete a catalogue ingredient.
//	@Tags		Admin, Ingredients
//
//	@Param		ingredientID	path	string	true	"Ingredient ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Ingredient not found"
//	@Router		/api/admin/ingredients/{ingredientID} [DELETE]
//	@Security	AccessTokenCookie
func HandleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, ok := idFromPath(w, r, "ingredientID", requestID)
	if !ok {
		return
	}

	err := e.Database.DeleteIngredient(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "ingredient not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to delete ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	e.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.DecodeJSON(dst, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return false
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(dst); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return false
	}
	return true
}

func idFromPath(w http.ResponseWriter, r *http.Request, param, requestID string) (int64, bool) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to parse path id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return 0, false
	}
	return id, true
}
