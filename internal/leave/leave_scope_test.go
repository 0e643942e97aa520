package leave

import (
	"errors"
	"fmt"
	"testing"

	leaveerrors "go-elra/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestScopeFor(t *testing.T) {
	o := newOrg()

	engReq := newDraft(o.engStaff)
	engReq.DepartmentID = engDept.ID
	opsReq := newDraft(o.opsStaff)
	opsReq.DepartmentID = opsDept.ID
	managerReq := newDraft(o.engManager)
	managerReq.DepartmentID = engDept.ID

	tests := []struct {
		name   string
		scope  Scope
		covers []*LeaveRequest
		hides  []*LeaveRequest
	}{
		{"super admin", ScopeFor(o.superAdmin), []*LeaveRequest{engReq, opsReq}, nil},
		{"hr hod", ScopeFor(o.hrHOD), []*LeaveRequest{engReq, opsReq}, nil},
		{"department hod", ScopeFor(o.engHOD), []*LeaveRequest{engReq, managerReq}, []*LeaveRequest{opsReq}},
		{"manager", ScopeFor(o.engManager), []*LeaveRequest{engReq, managerReq}, []*LeaveRequest{opsReq}},
		{"staff", ScopeFor(o.engStaff), []*LeaveRequest{engReq}, []*LeaveRequest{managerReq, opsReq}},
		{"viewer", ScopeFor(o.viewer), nil, []*LeaveRequest{engReq, opsReq}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, l := range tt.covers {
				assert.True(t, tt.scope.Covers(l))
			}
			for _, l := range tt.hides {
				assert.False(t, tt.scope.Covers(l))
			}
		})
	}

	t.Run("hr staff only see their own", func(t *testing.T) {
		s := ScopeFor(o.hrStaff)
		assert.False(t, s.All)
		assert.Nil(t, s.DepartmentID)
		assert.Equal(t, o.hrStaff.ID, *s.EmployeeID)
	})

	t.Run("own scope", func(t *testing.T) {
		id := uuid.New()
		s := OwnScope(id)
		assert.Equal(t, id, *s.EmployeeID)
		assert.Nil(t, s.DepartmentID)
	})
}

func TestMapRepositoryError(t *testing.T) {
	assert.NoError(t, mapRepositoryError(nil))
	assert.ErrorIs(t, mapRepositoryError(gorm.ErrRecordNotFound), leaveerrors.ErrLeaveNotFound)
	assert.ErrorIs(t, mapRepositoryError(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)), leaveerrors.ErrLeaveNotFound)

	overlap := &pgconn.PgError{Code: "23P01", ConstraintName: overlapConstraint}
	assert.ErrorIs(t, mapRepositoryError(overlap), leaveerrors.ErrLeaveOverlap)

	duplicateEntry := &pgconn.PgError{Code: "23505", ConstraintName: approverEntryConstraint}
	assert.ErrorIs(t, mapRepositoryError(duplicateEntry), leaveerrors.ErrConcurrentDecision)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "leave_requests_pkey"}
	assert.Equal(t, error(other), mapRepositoryError(other))

	text := errors.New(`ERROR: conflicting key value violates exclusion constraint "ex_leave_requests_no_overlap"`)
	assert.ErrorIs(t, mapRepositoryError(text), leaveerrors.ErrLeaveOverlap)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapRepositoryError(plain))
}
