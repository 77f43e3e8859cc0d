package database

import (
	"context"
)

const addToShoppingCart = `
INSERT INTO shopping_carts (user_id, recipe_id) VALUES ($1, $2)
`

type AddToShoppingCartParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddToShoppingCart(ctx context.Context, arg AddToShoppingCartParams) error {
	_, err := q.db.Exec(ctx, addToShoppingCart, arg.UserID, arg.RecipeID)
	return wrapUniqueViolation(err)
}

const removeFromShoppingCart = `
DELETE FROM shopping_carts WHERE user_id = $1 AND recipe_id = $2
`

type RemoveFromShoppingCartParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) RemoveFromShoppingCart(ctx context.Context, arg RemoveFromShoppingCartParams) error {
	tag, err := q.db.Exec(ctx, removeFromShoppingCart, arg.UserID, arg.RecipeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const listShoppingCart = `
SELECT r.id, r.author_id, r.name, r.image_url, r.text, r.cooking_time, r.short_link, r.pub_date
FROM recipes r
JOIN shopping_carts sc ON sc.recipe_id = r.id
WHERE sc.user_id = $1
ORDER BY r.pub_date DESC, r.id DESC
`

func (q *Queries) ListShoppingCart(ctx context.Context, userID int64) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listShoppingCart, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.ImageUrl, &r.Text,
			&r.CookingTime, &r.ShortLink, &r.PubDate); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Flat ingredient lines across every recipe in the user's cart. Grouping
// and summing happens in internal/shoppinglist so the ordering and
// rendering rules live in one place.
const cartIngredientLines = `
SELECT i.name, i.measurement_unit, ri.amount
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
JOIN shopping_carts sc ON sc.recipe_id = ri.recipe_id
WHERE sc.user_id = $1
`

type CartIngredientLinesRow struct {
	Name            string
	MeasurementUnit string
	Amount          int32
}

func (q *Queries) CartIngredientLines(ctx context.Context, userID int64) ([]CartIngredientLinesRow, error) {
	rows, err := q.db.Query(ctx, cartIngredientLines, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartIngredientLinesRow
	for rows.Next() {
		var r CartIngredientLinesRow
		if err := rows.Scan(&r.Name, &r.MeasurementUnit, &r.Amount); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const addFavorite = `
INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)
`

type AddFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) AddFavorite(ctx context.Context, arg AddFavoriteParams) error {
	_, err := q.db.Exec(ctx, addFavorite, arg.UserID, arg.RecipeID)
	return wrapUniqueViolation(err)
}

const removeFavorite = `
DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2
`

type RemoveFavoriteParams struct {
	UserID   int64
	RecipeID int64
}

func (q *Queries) RemoveFavorite(ctx context.Context, arg RemoveFavoriteParams) error {
	tag, err := q.db.Exec(ctx, removeFavorite, arg.UserID, arg.RecipeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
