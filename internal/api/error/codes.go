package error

import "net/http"

type ErrorCode string

const (
	UnknownError            ErrorCode = "unknown_error"
	InternalServerError     ErrorCode = "internal_server_error"
	BadRequest              ErrorCode = "bad_request"
	InvalidCredentials      ErrorCode = "invalid_credentials"
	MissingCredentials      ErrorCode = "missing_credentials"
	InvalidAccessToken      ErrorCode = "invalid_access_token"
	ExpiredAccessToken      ErrorCode = "expired_access_token"
	InvalidRefreshToken     ErrorCode = "invalid_refresh_token"
	ExpiredRefreshToken     ErrorCode = "expired_refresh_token"
	InsufficientPermissions ErrorCode = "insufficient_permissions"
	WeakPassword            ErrorCode = "weak_password"
	InvalidPassword         ErrorCode = "invalid_password"
	EmailConflict           ErrorCode = "email_conflict"
	UsernameConflict        ErrorCode = "username_conflict"
	UserNotFound            ErrorCode = "user_not_found"
	RecipeNotFound          ErrorCode = "recipe_not_found"
	RecipeNotOwned          ErrorCode = "recipe_not_owned"
	TagNotFound             ErrorCode = "tag_not_found"
	TagConflict             ErrorCode = "tag_conflict"
	IngredientNotFound      ErrorCode = "ingredient_not_found"
	LinkNotFound            ErrorCode = "link_not_found"
	AlreadyFavorited        ErrorCode = "already_favorited"
	NotFavorited            ErrorCode = "not_favorited"
	AlreadyInCart           ErrorCode = "already_in_shopping_cart"
	NotInCart               ErrorCode = "not_in_shopping_cart"
	AlreadySubscribed       ErrorCode = "already_subscribed"
	NotSubscribed           ErrorCode = "not_subscribed"
	SelfSubscription        ErrorCode = "self_subscription"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:            0, // No error code - unknown
	InternalServerError:     http.StatusInternalServerError,
	BadRequest:              http.StatusBadRequest,
	InvalidCredentials:      http.StatusUnauthorized,
	MissingCredentials:      http.StatusUnauthorized,
	InvalidAccessToken:      http.StatusUnauthorized,
	ExpiredAccessToken:      http.StatusUnauthorized,
	InvalidRefreshToken:     http.StatusUnauthorized,
	ExpiredRefreshToken:     http.StatusUnauthorized,
	InsufficientPermissions: http.StatusForbidden,
	WeakPassword:            http.StatusUnprocessableEntity,
	InvalidPassword:         http.StatusUnprocessableEntity,
	EmailConflict:           http.StatusConflict,
	UsernameConflict:        http.StatusConflict,
	UserNotFound:            http.StatusNotFound,
	RecipeNotFound:          http.StatusNotFound,
	RecipeNotOwned:          http.StatusForbidden,
	TagNotFound:             http.StatusNotFound,
	TagConflict:             http.StatusConflict,
	IngredientNotFound:      http.StatusNotFound,
	LinkNotFound:            http.StatusNotFound,
	AlreadyFavorited:        http.StatusBadRequest,
	NotFavorited:            http.StatusBadRequest,
	AlreadyInCart:           http.StatusBadRequest,
	NotInCart:               http.StatusBadRequest,
	AlreadySubscribed:       http.StatusBadRequest,
	NotSubscribed:           http.StatusBadRequest,
	SelfSubscription:        http.StatusBadRequest,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
