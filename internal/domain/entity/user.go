package entity

import "time"

// User roles. Admins run migrations and sweeps, managers maintain the
// inventory, viewers only browse.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// User is a staff account of the club.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, manager, viewer
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
