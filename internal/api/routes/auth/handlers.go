// Package auth contains handlers for the auth endpoints
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/api/token"
	"github.com/foodgram-app/backend/internal/argon2id"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
	fgJson "github.com/foodgram-app/backend/internal/json"
	"github.com/foodgram-app/backend/internal/jwt"
	"github.com/foodgram-app/backend/internal/role"
)

// HandleLogin godoc
//
//	@Summary	User login.
//	@Tags		Auth
//
//	@Accept		json
//	@Param		request	body	LoginRequest	true	"Login Request"
//
//	@Success	200
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/auth/login [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request LoginRequest
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

	// Retrieve user information
	e.Logger.DebugContext(ctx, "Retrieving user information")
	user, err := e.Database.GetUserByEmail(ctx, request.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "User with email does not exist", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to retrieve user information", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Compare passwords
	e.Logger.DebugContext(ctx, "Comparing passwords")
	match, err := argon2id.VerifyPassword(request.Password, user.PasswordHash)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to verify password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		e.Logger.ErrorContext(ctx, "Given password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	}

	// Create access token
	e.Logger.DebugContext(ctx, "Generating access token")
	accessToken, err := token.NewAccessToken(jwt.JWTParams{
		Role:   role.DBToRole(user.Role).String(),
		UserID: fmt.Sprintf("%d", user.ID),
	}, e)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create refresh token
	e.Logger.DebugContext(ctx, "Generating refresh token")
	refreshToken, err := token.NewRefreshToken(user.ID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create refresh token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	refreshTokenHash, err := argon2id.EncodeHash(refreshToken, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to hash refresh token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	err = e.Database.UpdateUserRefreshTokenHash(ctx, database.UpdateUserRefreshTokenHashParams{
		RefreshTokenHash: pgtype.Text{
			String: refreshTokenHash,
			Valid:  true,
		},
		ID: user.ID,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to update refresh token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Write response
	e.Logger.DebugContext(ctx, "Writing response")
	http.SetCookie(w, token.NewAccessTokenCookie(accessToken, e))
	http.SetCookie(w, token.NewRefreshTokenCookie(refreshToken, e))
}

// HandleLogout godoc
//
//	@Summary	User logout.
//	@Tags		Auth
//
//	@Success	204
//	@Router		/api/auth/logout [POST]
//	@Security	AccessTokenCookie
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Invalidate refresh token
	e.Logger.DebugContext(ctx, "Clearing refresh token")
	err = e.Database.UpdateUserRefreshTokenHash(ctx, database.UpdateUserRefreshTokenHashParams{
		RefreshTokenHash: pgtype.Text{Valid: false},
		ID:               userID,
	})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to clear refresh token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.SetCookie(w, token.ExpiredCookie(token.AccessTokenName(e)))
	http.SetCookie(w, token.ExpiredCookie(token.RefreshTokenName(e)))
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefreshSession godoc
//
//	@Summary	Refresh user session.
//	@Tags		Auth
//
//	@Param		Cookie	header	string	true	"Cookie header: refresh=..."
//
//	@Success	200
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/auth/refresh [POST]
func HandleRefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Extract refresh token
	e.Logger.DebugContext(ctx, "Extracting refresh token")
	cookie, err := r.Cookie(token.RefreshTokenName(e))
	if errors.Is(err, http.ErrNoCookie) {
		e.Logger.ErrorContext(ctx, "refresh token not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.MissingCredentials, "refresh token not found", requestID)
		return
	}

	// Extract user from refresh token
	e.Logger.DebugContext(ctx, "Extracting user id from refresh token")
	userID, err := token.ExtractUserIDFromRefreshToken(cookie.Value)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to extract user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidRefreshToken, "invalid refresh token", requestID)
		return
	}
	user, err := e.Database.GetUserByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "user not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidRefreshToken, "invalid refresh token", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Verify refresh token against stored hash
	e.Logger.DebugContext(ctx, "Verifying refresh token")
	if !user.RefreshTokenHash.Valid {
		e.Logger.ErrorContext(ctx, "no refresh token on record")
		_ = apiError.EncodeError(w, apiError.InvalidRefreshToken, "invalid refresh token", requestID)
		return
	}
	match, err := argon2id.VerifyPassword(cookie.Value, user.RefreshTokenHash.String)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to verify refresh token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		e.Logger.ErrorContext(ctx, "refresh token mismatch")
		_ = apiError.EncodeError(w, apiError.InvalidRefreshToken, "invalid refresh token", requestID)
		return
	}

	// Issue a fresh access token
	e.Logger.DebugContext(ctx, "Generating access token")
	accessToken, err := token.NewAccessToken(jwt.JWTParams{
		Role:   role.DBToRole(user.Role).String(),
		UserID: fmt.Sprintf("%d", user.ID),
	}, e)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.SetCookie(w, token.NewAccessTokenCookie(accessToken, e))
}
