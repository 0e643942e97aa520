package leave

import (
	"context"
	"time"

	"go-elra/internal/directory"

	"github.com/google/uuid"
)

var (
	hrDept    = &directory.Department{ID: uuid.New(), Name: directory.HRDepartmentName}
	engDept   = &directory.Department{ID: uuid.New(), Name: "Engineering"}
	opsDept   = &directory.Department{ID: uuid.New(), Name: "Operations"}
	adminDept = &directory.Department{ID: uuid.New(), Name: "Administration"}

	today = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
)

func newUser(first string, level int, dept *directory.Department) *directory.User {
	return &directory.User{
		ID:           uuid.New(),
		FirstName:    first,
		LastName:     "Test",
		RoleID:       uuid.New(),
		Role:         &directory.Role{Level: level, Name: first},
		DepartmentID: dept.ID,
		Department:   dept,
		IsActive:     true,
	}
}

// org is a small company with one user per interesting position.
type org struct {
	superAdmin *directory.User
	hrHOD      *directory.User
	hrStaff    *directory.User
	engHOD     *directory.User
	engManager *directory.User
	engStaff   *directory.User
	opsManager *directory.User
	opsStaff   *directory.User
	viewer     *directory.User
}

func newOrg() *org {
	return &org{
		superAdmin: newUser("Sara", directory.LevelSuperAdmin, adminDept),
		hrHOD:      newUser("Hana", directory.LevelHOD, hrDept),
		hrStaff:    newUser("Hugo", directory.LevelStaff, hrDept),
		engHOD:     newUser("Eko", directory.LevelHOD, engDept),
		engManager: newUser("Maya", directory.LevelManager, engDept),
		engStaff:   newUser("Budi", directory.LevelStaff, engDept),
		opsManager: newUser("Omar", directory.LevelManager, opsDept),
		opsStaff:   newUser("Oki", directory.LevelStaff, opsDept),
		viewer:     newUser("Vera", directory.LevelViewer, engDept),
	}
}

func (o *org) parties() parties {
	return parties{superAdmin: o.superAdmin, hrHOD: o.hrHOD}
}

// directory resolves approvers for the org. Operations has no HOD.
func (o *org) directory() *fakeDirectory {
	return &fakeDirectory{
		hods:       map[uuid.UUID]*directory.User{hrDept.ID: o.hrHOD, engDept.ID: o.engHOD},
		hrHOD:      o.hrHOD,
		superAdmin: o.superAdmin,
	}
}

type fakeDirectory struct {
	hods       map[uuid.UUID]*directory.User
	hrHOD      *directory.User
	superAdmin *directory.User
	err        error
}

func (f *fakeDirectory) GetUser(ctx context.Context, id uuid.UUID) (*directory.User, error) {
	return nil, f.err
}

func (f *fakeDirectory) FindHOD(ctx context.Context, departmentID uuid.UUID) (*directory.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hods[departmentID], nil
}

func (f *fakeDirectory) FindHRHOD(ctx context.Context) (*directory.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hrHOD, nil
}

func (f *fakeDirectory) FindSuperAdmin(ctx context.Context) (*directory.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.superAdmin, nil
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func newDraft(requester *directory.User) *LeaveRequest {
	return &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: requester.ID,
		Employee:   requester,
		LeaveType:  TypeAnnual,
		StartDate:  day(10),
		EndDate:    day(12),
		Days:       2,
		Reason:     "family trip",
		CreatedAt:  today,
		UpdatedAt:  today,
	}
}

func notifications(effects []Effect) []NotifyEffect {
	var out []NotifyEffect
	for _, e := range effects {
		if n, ok := e.(NotifyEffect); ok {
			out = append(out, n)
		}
	}
	return out
}

func audits(effects []Effect) []AuditEffect {
	var out []AuditEffect
	for _, e := range effects {
		if a, ok := e.(AuditEffect); ok {
			out = append(out, a)
		}
	}
	return out
}

func recipients(effects []Effect) []uuid.UUID {
	var out []uuid.UUID
	for _, n := range notifications(effects) {
		out = append(out, n.RecipientID)
	}
	return out
}
