package users

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestUserIDValidate(t *testing.T) {
	tests := []struct {
		name      string
		id        userID
		wantError bool
	}{
		{name: "numeric id", id: "123"},
		{name: "empty", id: "", wantError: true},
		{name: "non-numeric", id: "abc", wantError: true},
		{name: "trailing garbage", id: "12x", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCreateUserRequestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	valid := CreateUserRequest{
		Email:     "user@foodgram.example",
		Username:  "cook123",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "SecureP@ss123!",
	}

	tests := []struct {
		name      string
		mutate    func(*CreateUserRequest)
		wantError bool
	}{
		{name: "valid request", mutate: func(*CreateUserRequest) {}},
		{name: "missing email", mutate: func(r *CreateUserRequest) { r.Email = "" }, wantError: true},
		{name: "malformed email", mutate: func(r *CreateUserRequest) { r.Email = "not-an-email" }, wantError: true},
		{name: "username too short", mutate: func(r *CreateUserRequest) { r.Username = "ab" }, wantError: true},
		{name: "missing password", mutate: func(r *CreateUserRequest) { r.Password = "" }, wantError: true},
		{name: "missing first name", mutate: func(r *CreateUserRequest) { r.FirstName = "" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validate.Struct(req)
			if (err != nil) != tt.wantError {
				t.Errorf("Struct() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
