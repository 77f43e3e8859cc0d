package database

import (
	"context"
)

const searchIngredients = `
SELECT id, name, measurement_unit
FROM ingredients
WHERE $1::text = '' OR name LIKE $1 || '%'
ORDER BY name
`

func (q *Queries) SearchIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	rows, err := q.db.Query(ctx, searchIngredients, namePrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ingredient
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getIngredient = `
SELECT id, name, measurement_unit FROM ingredients WHERE id = $1
`

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	row := q.db.QueryRow(ctx, getIngredient, id)
	var i Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}

const createIngredient = `
INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id
`

type CreateIngredientParams struct {
	Name            string
	MeasurementUnit string
}

func (q *Queries) CreateIngredient(ctx context.Context, arg CreateIngredientParams) (int64, error) {
	row := q.db.QueryRow(ctx, createIngredient, arg.Name, arg.MeasurementUnit)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateIngredient = `
UPDATE ingredients SET name = $1, measurement_unit = $2 WHERE id = $3
`

type UpdateIngredientParams struct {
	Name            string
	MeasurementUnit string
	ID              int64
}

func (q *Queries) UpdateIngredient(ctx context.Context, arg UpdateIngredientParams) error {
	tag, err := q.db.Exec(ctx, updateIngredient, arg.Name, arg.MeasurementUnit, arg.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteIngredient = `
DELETE FROM ingredients WHERE id = $1
`

func (q *Queries) DeleteIngredient(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteIngredient, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
