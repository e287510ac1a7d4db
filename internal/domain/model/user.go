package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Email is unique across all users.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	Handle         string    `json:"handle"`
	CreatedAt      time.Time `json:"created_at"`
}

// Roles lists every role a user record may hold.
func Roles() []string {
	return []string{RoleUser, RoleAdmin}
}
