package account

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// User is the API response model for a registered user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Username  string `json:"username" doc:"Login name"`
	Email     string `json:"email" doc:"Email address"`
	IsActive  bool   `json:"is_active" doc:"Whether the account may log in"`
	CreatedAt string `json:"created_at" doc:"RFC3339 registration time"`
}

func userResponse(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
