package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (email, username, first_name, last_name, password_hash, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreateUserParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (int64, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.Email, arg.Username, arg.FirstName, arg.LastName, arg.PasswordHash, arg.Role)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, wrapUniqueViolation(err)
	}
	return id, nil
}

const getUserByEmail = `
SELECT id, email, username, first_name, last_name, password_hash,
       refresh_token_hash, role, avatar_url, created_at
FROM users
WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.RefreshTokenHash, &u.Role, &u.AvatarUrl, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, username, first_name, last_name, password_hash,
       refresh_token_hash, role, avatar_url, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.RefreshTokenHash, &u.Role, &u.AvatarUrl, &u.CreatedAt)
	return u, err
}

const updateUserPasswordHash = `
UPDATE users SET password_hash = $1 WHERE id = $2
`

type UpdateUserPasswordHashParams struct {
	PasswordHash string
	ID           int64
}

func (q *Queries) UpdateUserPasswordHash(ctx context.Context, arg UpdateUserPasswordHashParams) error {
	_, err := q.db.Exec(ctx, updateUserPasswordHash, arg.PasswordHash, arg.ID)
	return err
}

const updateUserRefreshTokenHash = `
UPDATE users SET refresh_token_hash = $1 WHERE id = $2
`

type UpdateUserRefreshTokenHashParams struct {
	RefreshTokenHash pgtype.Text
	ID               int64
}

func (q *Queries) UpdateUserRefreshTokenHash(ctx context.Context, arg UpdateUserRefreshTokenHashParams) error {
	_, err := q.db.Exec(ctx, updateUserRefreshTokenHash, arg.RefreshTokenHash, arg.ID)
	return err
}

const getAdminCount = `
SELECT COUNT(*) FROM users WHERE role = 'admin'
`

func (q *Queries) GetAdminCount(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, getAdminCount)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const checkUsersTableExists = `
SELECT EXISTS (
    SELECT FROM information_schema.tables
    WHERE table_schema = 'public' AND table_name = 'users'
)
`

func (q *Queries) CheckUsersTableExists(ctx context.Context) (bool, error) {
	row := q.db.QueryRow(ctx, checkUsersTableExists)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
