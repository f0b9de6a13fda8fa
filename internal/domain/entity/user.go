package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleEstoquista = "estoquista"
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro após persistir
	Name         string
	Role         string // admin, estoquista
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
