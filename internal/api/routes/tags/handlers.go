// Package tags contains handlers for the tag resource.
package tags

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

// TagResponse is a single tag.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListTagsResponse is the full tag catalogue.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

// NewTagResponse converts a database tag into its API representation.
func NewTagResponse(t database.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// HandleListTags godoc
//
//	@Summary	List all tags.
//	@Tags		Tags
//
//	@Success	200	{object}	ListTagsResponse
//	@Router		/api/tags [GET]
func HandleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	e.Logger.DebugContext(ctx, "listing tags")
	tags, err := e.Database.ListTags(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to list tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	resp := ListTagsResponse{Tags: make([]TagResponse, 0, len(tags))}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, NewTagResponse(t))
	}
	writeJSON(w, r, resp)
}

// HandleGetTag godoc
//
//	@Summary	Get a tag by id.
//	@Tags		Tags
//
//	@Param		tagID	path		string	true	"Tag ID"
//	@Success	200		{object}	TagResponse
//	@Failure	404		{object}	apiError.Error	"Tag not found"
//	@Router		/api/tags/{tagID} [GET]
func HandleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	id, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
	if err != nil {
		e.Logger.ErrorContext(ctx, "failed to parse tag id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}

	tag, err := e.Database.GetTag(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "tag not found", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "failed to retrieve tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, r, NewTagResponse(tag))
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
