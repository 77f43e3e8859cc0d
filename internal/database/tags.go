package database

import (
	"context"
)

const listTags = `
SELECT id, name, slug FROM tags ORDER BY name
`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const getTag = `
SELECT id, name, slug FROM tags WHERE id = $1
`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	row := q.db.QueryRow(ctx, getTag, id)
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.Slug)
	return t, err
}

const createTag = `
INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id
`

type CreateTagParams struct {
	Name string
	Slug string
}

func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (int64, error) {
	row := q.db.QueryRow(ctx, createTag, arg.Name, arg.Slug)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, wrapUniqueViolation(err)
	}
	return id, nil
}

const updateTag = `
UPDATE tags SET name = $1, slug = $2 WHERE id = $3
`

type UpdateTagParams struct {
	Name string
	Slug string
	ID   int64
}

func (q *Queries) UpdateTag(ctx context.Context, arg UpdateTagParams) error {
	tag, err := q.db.Exec(ctx, updateTag, arg.Name, arg.Slug, arg.ID)
	if err != nil {
		return wrapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteTag = `
DELETE FROM tags WHERE id = $1
`

func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteTag, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
