package admin

// CreateUserRequest creates a user with an explicit role.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
}

// CreateTagRequest creates a catalogue tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
	Slug string `json:"slug" validate:"required,max=64"`
}

// UpdateTagRequest replaces a tag's fields.
type UpdateTagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
	Slug string `json:"slug" validate:"required,max=64"`
}

// CreateIngredientRequest adds an ingredient to the catalogue.
type CreateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
}

// UpdateIngredientRequest replaces an ingredient's fields.
type UpdateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
}
