package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")

	ErrIngredientExists   = errors.New("ingredient already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrRecipeExists       = errors.New("recipe already exists")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrUnknownCategory    = errors.New("unknown meal category")

	ErrStorageNotConfigured = errors.New("image storage not configured")
)
