// Package users contains handlers for the user resource.
package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/api/token"
	"github.com/foodgram-app/backend/internal/argon2id"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
	fgJson "github.com/foodgram-app/backend/internal/json"
	"github.com/foodgram-app/backend/internal/password"
)

// HandleCreateUser godoc
//
//	@Summary	Register a user.
//	@Tags		User
//
//	@Accept		json
//	@Param		request	body	CreateUserRequest	true	"Create User Request"
//
//	@Success	200	{object}	CreateUserResponse
//	@Failure	409	{object}	apiError.Error	"Status Conflict"
//	@Failure	422	{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/users [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateUserRequest
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

	// Ensure password strength
	e.Logger.DebugContext(ctx, "Validating password")
	if err := password.ValidatePassword(request.Password); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	// Hash password
	e.Logger.DebugContext(ctx, "Hashing password")
	hash, err := argon2id.EncodeHash(request.Password, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create user
	e.Logger.DebugContext(ctx, "Creating user")
	newUserID, err := e.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
		Role:         database.RoleUser,
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "User already exists", slog.Any("error", err))
		if strings.Contains(err.Error(), "username") {
			_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
			return
		}
		_ = apiError.EncodeError(w, apiError.EmailConflict, "email already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Write response
	e.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(CreateUserResponse{UserID: newUserID})
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleGetMe godoc
//
//	@Summary	Get the authenticated user's profile.
//	@Tags		User
//
//	@Success	200	{object}	UserResponse
//	@Router		/api/users/me [GET]
//	@Security	AccessTokenCookie
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	e.Logger.DebugContext(ctx, "retrieving user")
	user, err := e.Database.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "user not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, NewUserResponse(user))
}

// HandleGetUser godoc
//
//	@Summary	Get a user's profile.
//	@Tags		User
//
//	@Param		userID	path		string	true	"User ID"
//	@Success	200		{object}	UserResponse
//	@Failure	404		{object}	apiError.Error	"User not found"
//	@Router		/api/users/{userID} [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userIDQ := userID(chi.URLParam(r, "userID"))
	if err := userIDQ.Validate(); err != nil {
		e.Logger.ErrorContext(ctx, "failed to validate user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	id, _ := strconv.ParseInt(string(userIDQ), 10, 64)

	user, err := e.Database.GetUserByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "user not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, NewUserResponse(user))
}

// HandleSetPassword godoc
//
//	@Summary	Change the authenticated user's password.
//	@Tags		User
//
//	@Accept		json
//	@Param		request	body	SetPasswordRequest	true	"Set Password Request"
//
//	@Success	204
//	@Failure	422	{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/users/set_password [POST]
//	@Security	AccessTokenCookie
func HandleSetPassword(w http.ResponseWriter, r *http.Request) {
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
	var request SetPasswordRequest
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

	// Verify current password
	e.Logger.DebugContext(ctx, "Verifying current password")
	user, err := e.Database.GetUserByID(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	match, err := argon2id.VerifyPassword(request.CurrentPassword, user.PasswordHash)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		e.Logger.ErrorContext(ctx, "current password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidPassword, "current password is incorrect", requestID)
		return
	}

	// Validate and hash new password
	e.Logger.DebugContext(ctx, "Validating new password")
	if err := password.ValidatePassword(request.NewPassword); err != nil {
		e.Logger.ErrorContext(ctx, "failed to validate new password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID)
		return
	}
	hash, err := argon2id.EncodeHash(request.NewPassword, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	err = e.Database.UpdateUserPasswordHash(ctx, database.UpdateUserPasswordHashParams{
		PasswordHash: hash,
		ID:           userID,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List the authors the authenticated user follows.
//	@Tags		User, Subscriptions
//
//	@Success	200	{object}	ListSubscriptionsResponse
//	@Router		/api/users/subscriptions [GET]
//	@Security	AccessTokenCookie
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	e.Logger.DebugContext(ctx, "listing subscriptions")
	authors, err := e.Database.ListSubscriptions(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := ListSubscriptionsResponse{Authors: make([]UserResponse, 0, len(authors))}
	for _, a := range authors {
		resp.Authors = append(resp.Authors, NewUserResponse(a))
	}
	writeJSON(w, r, resp)
}

// HandleSubscribe godoc
//
//	@Summary	Follow an author.
//	@Tags		User, Subscriptions
//
//	@Param		userID	path	string	true	"Author ID"
//
//	@Success	201
//	@Failure	400	{object}	apiError.Error	"Already subscribed / self subscription"
//	@Failure	404	{object}	apiError.Error	"Author not found"
//	@Router		/api/users/{userID}/subscribe [POST]
//	@Security	AccessTokenCookie
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, ok := authorIDFromPath(w, r, requestID)
	if !ok {
		return
	}
	if authorID == userID {
		e.Logger.ErrorContext(ctx, "user attempted to subscribe to themselves")
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	}

	// Confirm the author exists
	if _, err := e.Database.GetUserByID(ctx, authorID); errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "author not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	e.Logger.DebugContext(ctx, "creating subscription")
	err = e.Database.CreateSubscription(ctx, database.CreateSubscriptionParams{
		UserID:   userID,
		AuthorID: authorID,
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		e.Logger.ErrorContext(ctx, "already subscribed", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed to this author", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleUnsubscribe godoc
//
//	@Summary	Unfollow an author.
//	@Tags		User, Subscriptions
//
//	@Param		userID	path	string	true	"Author ID"
//
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not subscribed"
//	@Router		/api/users/{userID}/subscribe [DELETE]
//	@Security	AccessTokenCookie
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, ok := authorIDFromPath(w, r, requestID)
	if !ok {
		return
	}

	e.Logger.DebugContext(ctx, "deleting subscription")
	err = e.Database.DeleteSubscription(ctx, database.DeleteSubscriptionParams{
		UserID:   userID,
		AuthorID: authorID,
	})
	if errors.Is(err, database.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "not subscribed", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.NotSubscribed, "not subscribed to this author", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to delete subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func authorIDFromPath(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	authorIDQ := userID(chi.URLParam(r, "userID"))
	if err := authorIDQ.Validate(); err != nil {
		e.Logger.ErrorContext(ctx, "failed to validate user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return 0, false
	}
	id, _ := strconv.ParseInt(string(authorIDQ), 10, 64)
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
