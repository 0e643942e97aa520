package approval

import (
	"context"

	approvalerrors "go-elra/internal/approval/errors"
	"go-elra/internal/directory"

	"github.com/google/uuid"
)

// Policy is the routing shape a request follows, decided once from the
// requester's role level and whether they sit in the HR department.
type Policy int

const (
	PolicyUnknown Policy = iota
	PolicyAutoApproved
	PolicyHRHODOnly
	PolicyDeptHODThenHRHOD
)

// Chain labels.
const (
	LabelAutoApproved  = "Auto-approved"
	LabelHRHOD         = "HR HOD"
	LabelDepartmentHOD = "Department HOD"
	LabelSuperAdmin    = "Super Admin"
	LabelUnknown       = "Unknown"
)

func (p Policy) String() string {
	switch p {
	case PolicyAutoApproved:
		return "auto_approved"
	case PolicyHRHODOnly:
		return "hr_hod_only"
	case PolicyDeptHODThenHRHOD:
		return "dept_hod_then_hr_hod"
	default:
		return "unknown"
	}
}

func PolicyFor(level int, isHRDepartment bool) Policy {
	switch level {
	case directory.LevelSuperAdmin:
		return PolicyAutoApproved
	case directory.LevelHOD:
		return PolicyHRHODOnly
	case directory.LevelManager, directory.LevelStaff:
		if isHRDepartment {
			return PolicyHRHODOnly
		}
		return PolicyDeptHODThenHRHOD
	default:
		return PolicyUnknown
	}
}

func ChainLabels(p Policy) []string {
	switch p {
	case PolicyAutoApproved:
		return []string{LabelAutoApproved}
	case PolicyHRHODOnly:
		return []string{LabelHRHOD}
	case PolicyDeptHODThenHRHOD:
		return []string{LabelDepartmentHOD, LabelHRHOD}
	default:
		return []string{LabelUnknown}
	}
}

func GetApprovalChain(level int, departmentName string) []string {
	return ChainLabels(PolicyFor(level, directory.IsHRDepartment(departmentName)))
}

// GetNextApprover returns nil without error for auto-approved levels and
// when nobody can be found; callers treat the latter as NoApproverFound.
func GetNextApprover(ctx context.Context, dir directory.Directory, level int, departmentID uuid.UUID, departmentName string) (*directory.User, error) {
	switch PolicyFor(level, directory.IsHRDepartment(departmentName)) {
	case PolicyAutoApproved, PolicyUnknown:
		return nil, nil
	case PolicyHRHODOnly:
		return dir.FindHRHOD(ctx)
	default:
		hod, err := dir.FindHOD(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		if hod != nil {
			return hod, nil
		}
		return dir.FindHRHOD(ctx)
	}
}

// Route is the resolved path for a new request.
type Route struct {
	Policy   Policy
	Chain    []string
	Approver *directory.User
	// Label is the chain label of Approver, recorded on its approval entry.
	Label string
}

func (r Route) AutoApproved() bool {
	return r.Policy == PolicyAutoApproved
}

// ResolveRoute computes the chain and first approver for a requester.
// A requester is never their own approver: when the lookup lands on them
// (the HR HOD filing leave), the request goes to the Super Admin instead.
func ResolveRoute(ctx context.Context, dir directory.Directory, requester *directory.User) (Route, error) {
	policy := PolicyFor(requester.RoleLevel(), requester.InHRDepartment())
	route := Route{Policy: policy, Chain: ChainLabels(policy)}

	switch policy {
	case PolicyAutoApproved:
		return route, nil
	case PolicyUnknown:
		return route, approvalerrors.ErrUnknownRoleLevel
	}

	approver, err := GetNextApprover(ctx, dir, requester.RoleLevel(), requester.DepartmentID, requester.DepartmentName())
	if err != nil {
		return route, err
	}
	if approver != nil && approver.ID == requester.ID {
		approver, err = dir.FindSuperAdmin(ctx)
		if err != nil {
			return route, err
		}
		route.Chain = []string{LabelSuperAdmin}
	}
	if approver == nil {
		return route, approvalerrors.ErrNoApproverFound
	}

	route.Approver = approver
	route.Label = LabelFor(approver)
	return route, nil
}

// ResolveEscalation finds who takes over after a non-final approval.
func ResolveEscalation(ctx context.Context, dir directory.Directory, requesterID uuid.UUID) (*directory.User, error) {
	next, err := dir.FindHRHOD(ctx)
	if err != nil {
		return nil, err
	}
	if next != nil && next.ID == requesterID {
		next, err = dir.FindSuperAdmin(ctx)
		if err != nil {
			return nil, err
		}
	}
	if next == nil {
		return nil, approvalerrors.ErrNoApproverFound
	}
	return next, nil
}

// LabelFor names the position a user signs for in the approval log.
func LabelFor(u *directory.User) string {
	switch {
	case u.RoleLevel() >= directory.LevelSuperAdmin:
		return LabelSuperAdmin
	case u.IsHRHOD():
		return LabelHRHOD
	case u.RoleLevel() == directory.LevelHOD:
		return LabelDepartmentHOD
	default:
		return u.RoleName()
	}
}
