package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// EffectiveRole is the role used for authorization. Deactivated users keep
// read access only.
func (u *User) EffectiveRole() Role {
	if !u.IsActive || u.DeletedAt != nil {
		return RoleViewer
	}
	return u.Role
}
