package types

// RegisterUserRequest represents the request body for creating a user
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyUserRequest carries the credentials checked by the verification endpoint
type VerifyUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest changes a user's password and, when Username is set, the username as well
type UpdateUserRequest struct {
	ID       uint   `json:"id" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// CreateRecipeRequest represents the request body for adding a recipe
type CreateRecipeRequest struct {
	Name         string            `json:"name" binding:"required"`
	Servings     OptionalInt       `json:"servings"`
	Image        string            `json:"image"`
	Ingredients  []IngredientInput `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	Time         *TimeInput        `json:"time"`
}

type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// TimeInput holds the duration breakdown in minutes. Every field is optional.
type TimeInput struct {
	Prep     OptionalInt `json:"prep"`
	Cook     OptionalInt `json:"cook"`
	Active   OptionalInt `json:"active"`
	Inactive OptionalInt `json:"inactive"`
	Ready    OptionalInt `json:"ready"`
	Total    OptionalInt `json:"total"`
}
