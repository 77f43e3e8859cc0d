package users

import (
	"github.com/foodgram-app/backend/internal/database"
)

type CreateUserResponse struct {
	UserID int64 `json:"user_id"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func NewUserResponse(u database.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.AvatarUrl.Valid {
		resp.AvatarURL = u.AvatarUrl.String
	}
	return resp
}

type ListSubscriptionsResponse struct {
	Authors []UserResponse `json:"authors"`
}
