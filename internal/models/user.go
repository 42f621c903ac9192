package models

import "time"

type Role string

const (
	RoleAdminTotal Role = "ADMIN_TOTAL"
	RoleAdminDept  Role = "ADMIN_DEPT"
	RoleUser       Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdminTotal, RoleAdminDept, RoleUser:
		return true
	}
	return false
}

// IsAdmin reports whether r may use the administration endpoints.
func (r Role) IsAdmin() bool {
	return r == RoleAdminTotal || r == RoleAdminDept
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	DepartmentID *uint64   `gorm:"index" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
}
