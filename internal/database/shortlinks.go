package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getRecipeShortLink = `
SELECT short_link FROM recipes WHERE id = $1
`

func (q *Queries) GetRecipeShortLink(ctx context.Context, id int64) (pgtype.Text, error) {
	row := q.db.QueryRow(ctx, getRecipeShortLink, id)
	var shortLink pgtype.Text
	err := row.Scan(&shortLink)
	return shortLink, err
}

const setRecipeShortLink = `
UPDATE recipes SET short_link = $1 WHERE id = $2
`

type SetRecipeShortLinkParams struct {
	ShortLink pgtype.Text
	ID        int64
}

// SetRecipeShortLink persists a token for a recipe. The unique constraint
// on recipes.short_link rejects duplicates atomically; callers retry on
// ErrUniqueViolation.
func (q *Queries) SetRecipeShortLink(ctx context.Context, arg SetRecipeShortLinkParams) error {
	tag, err := q.db.Exec(ctx, setRecipeShortLink, arg.ShortLink, arg.ID)
	if err != nil {
		return wrapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const getRecipeIDByShortLink = `
SELECT id FROM recipes WHERE short_link = $1
`

func (q *Queries) GetRecipeIDByShortLink(ctx context.Context, shortLink string) (int64, error) {
	row := q.db.QueryRow(ctx, getRecipeIDByShortLink, shortLink)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createLinkMapped = `
INSERT INTO link_mapped (url_hash, original_url) VALUES ($1, $2) RETURNING id
`

type CreateLinkMappedParams struct {
	UrlHash     string
	OriginalUrl string
}

func (q *Queries) CreateLinkMapped(ctx context.Context, arg CreateLinkMappedParams) (int64, error) {
	row := q.db.QueryRow(ctx, createLinkMapped, arg.UrlHash, arg.OriginalUrl)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, wrapUniqueViolation(err)
	}
	return id, nil
}

const getLinkMapped = `
SELECT id, url_hash, original_url FROM link_mapped WHERE url_hash = $1
`

func (q *Queries) GetLinkMapped(ctx context.Context, urlHash string) (LinkMapped, error) {
	row := q.db.QueryRow(ctx, getLinkMapped, urlHash)
	var l LinkMapped
	err := row.Scan(&l.ID, &l.UrlHash, &l.OriginalUrl)
	return l, err
}
