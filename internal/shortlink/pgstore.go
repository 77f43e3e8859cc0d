package shortlink

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/foodgram-app/backend/internal/database"
)

// PGStore adapts the database layer to the store interfaces, translating
// persistence errors into the package's sentinels.
type PGStore struct {
	DB *database.Database
}

var (
	_ RecipeStore = PGStore{}
	_ LinkStore   = PGStore{}
)

func (s PGStore) RecipeShortLink(ctx context.Context, recipeID int64) (string, error) {
	shortLink, err := s.DB.GetRecipeShortLink(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	if !shortLink.Valid {
		return "", nil
	}
	return shortLink.String, nil
}

func (s PGStore) SetRecipeShortLink(ctx context.Context, recipeID int64, token string) error {
	err := s.DB.SetRecipeShortLink(ctx, database.SetRecipeShortLinkParams{
		ShortLink: pgtype.Text{String: token, Valid: true},
		ID:        recipeID,
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		return ErrTokenTaken
	}
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s PGStore) RecipeIDByShortLink(ctx context.Context, token string) (int64, error) {
	id, err := s.DB.GetRecipeIDByShortLink(ctx, token)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (s PGStore) CreateLink(ctx context.Context, token, originalURL string) error {
	_, err := s.DB.CreateLinkMapped(ctx, database.CreateLinkMappedParams{
		UrlHash:     token,
		OriginalUrl: originalURL,
	})
	if errors.Is(err, database.ErrUniqueViolation) {
		return ErrTokenTaken
	}
	return err
}

func (s PGStore) OriginalURL(ctx context.Context, token string) (string, error) {
	link, err := s.DB.GetLinkMapped(ctx, token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	return link.OriginalUrl, nil
}
