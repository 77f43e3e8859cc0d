// Package links contains the short-link redirect handler and the
// generic URL shortener endpoint.
package links

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/foodgram-app/backend/internal/api/error"
	"github.com/foodgram-app/backend/internal/api/requestid"
	"github.com/foodgram-app/backend/internal/env"
	fgJson "github.com/foodgram-app/backend/internal/json"
	"github.com/foodgram-app/backend/internal/shortlink"
)

// ShortenRequest shortens an arbitrary URL.
type ShortenRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ShortenResponse carries the generated short link.
type ShortenResponse struct {
	ShortLink string `json:"short-link"`
}

// HandleShorten godoc
//
//	@Summary	Shorten an arbitrary URL.
//	@Tags		ShortLinks
//
//	@Accept		json
//	@Param		request	body	ShortenRequest	true	"Shorten Request"
//
//	@Success	200	{object}	ShortenResponse
//	@Router		/api/links [POST]
//	@Security	AccessTokenCookie
func HandleShorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request ShortenRequest
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

	e.Logger.DebugContext(ctx, "shortening url")
	tok, err := e.ShortLinks.ShortenURL(ctx, request.URL)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to shorten url", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp, err := json.Marshal(ShortenResponse{ShortLink: e.ShortLinks.ShortURL(tok)})
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		e.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleRedirect godoc
//
//	@Summary	Resolve a short-link token and redirect.
//	@Tags		ShortLinks
//
//	@Param		token	path	string	true	"Short-link token"
//
//	@Success	302
//	@Failure	404	{object}	apiError.Error	"Unknown token"
//	@Router		/s/{token} [GET]
func HandleRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	tok := chi.URLParam(r, "token")
	if tok == "" {
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}

	// Recipe tokens take precedence over generic mapped links.
	recipeID, err := e.ShortLinks.ResolveRecipe(ctx, tok)
	if err == nil {
		http.Redirect(w, r, fmt.Sprintf("/recipes/%d/", recipeID), http.StatusFound)
		return
	}
	if !errors.Is(err, shortlink.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "failed to resolve recipe token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	originalURL, err := e.ShortLinks.ResolveURL(ctx, tok)
	if errors.Is(err, shortlink.ErrNotFound) {
		e.Logger.ErrorContext(ctx, "unknown short-link token", slog.String("token", tok))
		_ = apiError.EncodeError(w, apiError.LinkNotFound, "short link not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to resolve mapped link", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}
