package mapping

import (
	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	"github.com/SscSPs/journal_workflow_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role.String(),
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		DeletedAt:    d.DeletedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User. An unrecognised stored
// role maps to RoleUnknown, which satisfies no check.
func ToDomainUser(m models.User) domain.User {
	role, err := domain.ParseRole(m.Role)
	if err != nil {
		role = domain.RoleUnknown
	}
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         role,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		DeletedAt:    m.DeletedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
