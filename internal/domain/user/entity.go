package user

import (
	"time"

	"github.com/profitpulse/profitpulse-api/internal/domain/rbac"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         rbac.Role
	DepartmentID *string // set for department heads
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity carried through request contexts
func (u *User) Principal() rbac.Principal {
	return rbac.Principal{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}
