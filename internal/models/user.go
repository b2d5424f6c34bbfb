package models

import (
	"time"
)

// User is a row of the users table. Role is stored by name.
type User struct {
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Role         string     `db:"role"`
	PasswordHash string     `db:"password_hash"`
	IsActive     bool       `db:"is_active"`
	DeletedAt    *time.Time `db:"deleted_at"`
	AuditFields
}
