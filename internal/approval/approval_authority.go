package approval

import (
	"go-elra/internal/directory"

	"github.com/google/uuid"
)

// Target is what the authority rules need to know about a pending request.
type Target struct {
	DepartmentID      uuid.UUID
	ApprovalLevel     int
	CurrentApproverID *uuid.UUID
}

// CanApprove checks department authority only.
func CanApprove(actor *directory.User, t Target) bool {
	switch level := actor.RoleLevel(); {
	case level >= directory.LevelSuperAdmin:
		return true
	case level == directory.LevelHOD:
		return actor.InHRDepartment() || actor.DepartmentID == t.DepartmentID
	case level == directory.LevelManager:
		return actor.DepartmentID == t.DepartmentID
	default:
		return false
	}
}

// CanOverride reports whether a level may act without being the current approver.
func CanOverride(actorLevel, approvalLevel int) bool {
	switch {
	case actorLevel >= directory.LevelSuperAdmin:
		return true
	case actorLevel == directory.LevelHOD:
		return approvalLevel <= 2
	case actorLevel == directory.LevelManager:
		return approvalLevel == 1
	default:
		return false
	}
}

// Authorize combines department authority with either being the current
// approver or holding an override.
func Authorize(actor *directory.User, t Target) bool {
	if actor == nil || !CanApprove(actor, t) {
		return false
	}
	if t.CurrentApproverID != nil && *t.CurrentApproverID == actor.ID {
		return true
	}
	return CanOverride(actor.RoleLevel(), t.ApprovalLevel)
}

// IsFinalApproval is true for the Super Admin and the HR HOD; every other
// approval escalates to the HR HOD.
func IsFinalApproval(actor *directory.User) bool {
	return actor.RoleLevel() >= directory.LevelSuperAdmin || actor.IsHRHOD()
}
