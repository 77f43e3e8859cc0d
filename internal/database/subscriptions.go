package database

import (
	"context"
)

const createSubscription = `
INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)
`

type CreateSubscriptionParams struct {
	UserID   int64
	AuthorID int64
}

func (q *Queries) CreateSubscription(ctx context.Context, arg CreateSubscriptionParams) error {
	_, err := q.db.Exec(ctx, createSubscription, arg.UserID, arg.AuthorID)
	return wrapUniqueViolation(err)
}

const deleteSubscription = `
DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2
`

type DeleteSubscriptionParams struct {
	UserID   int64
	AuthorID int64
}

func (q *Queries) DeleteSubscription(ctx context.Context, arg DeleteSubscriptionParams) error {
	tag, err := q.db.Exec(ctx, deleteSubscription, arg.UserID, arg.AuthorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const listSubscriptions = `
SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash,
       u.refresh_token_hash, u.role, u.avatar_url, u.created_at
FROM users u
JOIN subscriptions s ON s.author_id = u.id
WHERE s.user_id = $1
ORDER BY u.username
`

func (q *Queries) ListSubscriptions(ctx context.Context, userID int64) ([]User, error) {
	rows, err := q.db.Query(ctx, listSubscriptions, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.RefreshTokenHash, &u.Role, &u.AvatarUrl, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, rows.Err()
}
