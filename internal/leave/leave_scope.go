package leave

import (
	"go-elra/internal/directory"

	"github.com/google/uuid"
)

// Scope limits which requests a query returns. With both DepartmentID and
// EmployeeID set, a request matching either is included.
type Scope struct {
	All          bool
	DepartmentID *uuid.UUID
	EmployeeID   *uuid.UUID
}

func OwnScope(userID uuid.UUID) Scope {
	return Scope{EmployeeID: &userID}
}

// ScopeFor is the read visibility of a role: Super Admin and HR HOD see
// everything, HODs their department, Managers their department and their
// own requests, everyone else their own requests.
func ScopeFor(actor *directory.User) Scope {
	id := actor.ID
	dept := actor.DepartmentID

	switch level := actor.RoleLevel(); {
	case level >= directory.LevelSuperAdmin, actor.IsHRHOD():
		return Scope{All: true}
	case level == directory.LevelHOD:
		return Scope{DepartmentID: &dept}
	case level == directory.LevelManager:
		return Scope{DepartmentID: &dept, EmployeeID: &id}
	default:
		return Scope{EmployeeID: &id}
	}
}

func (s Scope) Covers(l *LeaveRequest) bool {
	if s.All {
		return true
	}
	if s.DepartmentID != nil && *s.DepartmentID == l.DepartmentID {
		return true
	}
	return s.EmployeeID != nil && *s.EmployeeID == l.EmployeeID
}
