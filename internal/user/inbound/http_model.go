package inbound

import (
	"net/http"
	"time"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserResponse struct {
	User
}

func (CreateUserResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateUserResponse) Message() string {
	return "user created, welcome email scheduled"
}

type ListUsersResponse []User

func (r ListUsersResponse) Meta() map[string]any {
	return map[string]any{"total": len(r)}
}
