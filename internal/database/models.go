package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID               int64
	Email            string
	Username         string
	FirstName        string
	LastName         string
	PasswordHash     string
	RefreshTokenHash pgtype.Text
	Role             Role
	AvatarUrl        pgtype.Text
	CreatedAt        pgtype.Timestamptz
}

type Tag struct {
	ID   int64
	Name string
	Slug string
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	ImageUrl    pgtype.Text
	Text        string
	CookingTime int32
	ShortLink   pgtype.Text
	PubDate     pgtype.Timestamptz
}

type RecipeIngredient struct {
	ID           int64
	RecipeID     int64
	IngredientID int64
	Amount       int32
}

type LinkMapped struct {
	ID          int64
	UrlHash     string
	OriginalUrl string
}
