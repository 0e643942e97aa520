package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authority ladder. Higher levels inherit everything lower levels may do.
const (
	LevelSuperAdmin = 1000
	LevelHOD        = 700
	LevelManager    = 600
	LevelStaff      = 300
	LevelViewer     = 100
)

// HRDepartmentName identifies the regulatory department whose HOD signs off every leave request.
const HRDepartmentName = "Human Resources"

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Level       int       `gorm:"not null;index" json:"level"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Code      string    `gorm:"size:20;uniqueIndex" json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	FirstName    string      `gorm:"size:100" json:"first_name"`
	LastName     string      `gorm:"size:100" json:"last_name"`
	RoleID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"role_id"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DepartmentID uuid.UUID   `gorm:"type:uuid;not null;index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RoleLevel is 0 when the role was not loaded; 0 is below every rung of the ladder.
func (u *User) RoleLevel() int {
	if u == nil || u.Role == nil {
		return 0
	}
	return u.Role.Level
}

func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

func (u *User) DepartmentName() string {
	if u == nil || u.Department == nil {
		return ""
	}
	return u.Department.Name
}

func (u *User) InHRDepartment() bool {
	return IsHRDepartment(u.DepartmentName())
}

// IsHRHOD reports whether the user is the regulatory approver.
func (u *User) IsHRHOD() bool {
	return u.RoleLevel() == LevelHOD && u.InHRDepartment()
}

func IsHRDepartment(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), HRDepartmentName)
}
