package entity

import "time"

// User representa un miembro del personal con acceso a la aplicación.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
