package types

import "github.com/pageza/cookbook/backend/internal/models"

// UserResponse is the only shape a user is ever written to a client in.
// It deliberately has no password field.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// MessageResponse confirms an operation that has no entity to return
type MessageResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

// VerificationResponse is returned when a username/password pair checks out
type VerificationResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}
