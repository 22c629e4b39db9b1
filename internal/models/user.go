package models

import "time"

const (
	RoleAthlete      = "athlete"
	RoleNutritionist = "nutritionist"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	return role == RoleAthlete || role == RoleNutritionist
}
