package leave

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-elra/internal/approval"
	approvalerrors "go-elra/internal/approval/errors"
	"go-elra/internal/audit"
	leaveerrors "go-elra/internal/leave/errors"
	"go-elra/internal/notification"
	"go-elra/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn        func(ctx context.Context, l *LeaveRequest) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	updateFn        func(ctx context.Context, l *LeaveRequest) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	overlapFn       func(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	listFn          func(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error)
	pendingFn       func(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error)
	countByStatusFn func(ctx context.Context, scope Scope) (map[string]int64, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) Repository {
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingRequest(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	if f.overlapFn != nil {
		return f.overlapFn(ctx, employeeID, start, end, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) List(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error) {
	if f.listFn != nil {
		return f.listFn(ctx, scope, filter)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error) {
	if f.pendingFn != nil {
		return f.pendingFn(ctx, approverID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) CountByStatus(ctx context.Context, scope Scope) (map[string]int64, error) {
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx, scope)
	}
	return map[string]int64{}, nil
}

type recordingNotifier struct {
	sent []notification.CreateNotificationRequest
	err  error
}

func (r *recordingNotifier) Create(ctx context.Context, req notification.CreateNotificationRequest) error {
	r.sent = append(r.sent, req)
	return r.err
}

type auditCall struct {
	userID    uuid.UUID
	action    string
	requestID uuid.UUID
}

type recordingAuditor struct {
	calls []auditCall
	err   error
}

func (r *recordingAuditor) LogLeaveAction(ctx context.Context, userID uuid.UUID, action string, requestID uuid.UUID, details map[string]any) error {
	r.calls = append(r.calls, auditCall{userID: userID, action: action, requestID: requestID})
	return r.err
}

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  Service
	repo     *fakeLeaveRepository
	dir      *fakeDirectory
	notifier *recordingNotifier
	auditor  *recordingAuditor
	org      *org
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	o := newOrg()
	deps := &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     &fakeLeaveRepository{},
		dir:      o.directory(),
		notifier: &recordingNotifier{},
		auditor:  &recordingAuditor{},
		org:      o,
	}
	dispatcher := NewDispatcher(deps.notifier, deps.auditor)
	deps.service = NewServiceWithClock(db, deps.repo, deps.dir, dispatcher, func() time.Time { return today })
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreate() CreateLeaveRequest {
	return CreateLeaveRequest{
		LeaveType: TypeAnnual,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Reason:    "family trip",
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("routes staff to department hod", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := deps.org
		expectTx(t, deps.sqlMock, true)

		var stored *LeaveRequest
		deps.repo.overlapFn = func(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
			assert.Equal(t, o.engStaff.ID, employeeID)
			assert.Equal(t, day(10), start)
			assert.Equal(t, day(12), end)
			assert.Nil(t, excludeID)
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *LeaveRequest) error {
			stored = l
			return nil
		}

		resp, err := deps.service.Create(ctx, o.engStaff, validCreate())

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, 2, resp.ApprovalLevel)
		assert.Equal(t, 2, resp.Days)
		assert.Equal(t, o.engHOD.ID.String(), *resp.CurrentApproverID)
		assert.Equal(t, []string{approval.LabelDepartmentHOD, approval.LabelHRHOD}, resp.ApprovalChain)
		assert.Len(t, resp.Approvals, 1)

		require.Len(t, deps.notifier.sent, 3)
		assert.Equal(t, o.engHOD.ID.String(), deps.notifier.sent[0].RecipientID)
		require.Len(t, deps.auditor.calls, 1)
		assert.Equal(t, audit.ActionLeaveCreated, deps.auditor.calls[0].action)
		assert.Equal(t, stored.ID, deps.auditor.calls[0].requestID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("super admin is auto-approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, deps.org.superAdmin, validCreate())

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.Equal(t, 3, resp.ApprovalLevel)
		assert.Nil(t, resp.CurrentApproverID)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.overlapFn = func(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *LeaveRequest) error {
			t.Fatal("create must not be called")
			return nil
		}

		_, err := deps.service.Create(ctx, deps.org.engStaff, validCreate())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.Equal(t, http.StatusConflict, apperror.ToHTTP(err).Status)
		assert.Empty(t, deps.notifier.sent)
		assert.Empty(t, deps.auditor.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("viewer cannot request", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, deps.org.viewer, validCreate())

		assert.ErrorIs(t, err, leaveerrors.ErrViewerCannotRequest)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid dates", func(t *testing.T) {
		deps := setupServiceTest(t)

		req := validCreate()
		req.StartDate = "03/10/2025"
		_, err := deps.service.Create(ctx, deps.org.engStaff, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)

		req = validCreate()
		req.StartDate = "2025-02-20"
		_, err = deps.service.Create(ctx, deps.org.engStaff, req)
		assert.ErrorIs(t, err, leaveerrors.ErrStartDateInPast)
	})

	t.Run("no approver found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.dir.hods = nil
		deps.dir.hrHOD = nil

		_, err := deps.service.Create(ctx, deps.org.engStaff, validCreate())

		assert.ErrorIs(t, err, approvalerrors.ErrNoApproverFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("persist error rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, l *LeaveRequest) error {
			return errors.New("insert failed")
		}

		_, err := deps.service.Create(ctx, deps.org.engStaff, validCreate())

		assert.EqualError(t, err, "insert failed")
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.notifier.err = errors.New("notification store down")
		deps.auditor.err = errors.New("audit store down")
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, deps.org.engStaff, validCreate())

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Len(t, deps.notifier.sent, 3)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

// storedRequest is a pending request from engineering staff, waiting on the department HOD.
func storedRequest(t *testing.T, deps *serviceDeps) *LeaveRequest {
	t.Helper()
	o := deps.org
	route, err := approval.ResolveRoute(context.Background(), deps.dir, o.engStaff)
	require.NoError(t, err)
	l := newDraft(o.engStaff)
	planCreate(l, o.engStaff, route, o.parties(), today)
	deps.repo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
		if id != l.ID {
			return nil, gorm.ErrRecordNotFound
		}
		return l, nil
	}
	return l
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("department hod approval escalates", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, true)

		var updated *LeaveRequest
		deps.repo.updateFn = func(ctx context.Context, l *LeaveRequest) error {
			updated = l
			return nil
		}

		resp, err := deps.service.Decide(ctx, deps.org.engHOD, l.ID.String(), DecisionRequest{Action: ActionApprove, Comment: "ok"})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, 3, resp.ApprovalLevel)
		assert.Equal(t, deps.org.hrHOD.ID.String(), *resp.CurrentApproverID)
		require.Len(t, deps.notifier.sent, 2)
		assert.Equal(t, notification.TypeLeaveEscalated, deps.notifier.sent[0].Type)
		require.Len(t, deps.auditor.calls, 1)
		assert.Equal(t, audit.ActionLeaveApproved, deps.auditor.calls[0].action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr hod gives final approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		_, err := planDecision(l, deps.org.engHOD, ActionApprove, "", deps.org.hrHOD, deps.org.parties(), today)
		require.NoError(t, err)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Decide(ctx, deps.org.hrHOD, l.ID.String(), DecisionRequest{Action: ActionApprove})

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Decide(ctx, deps.org.engHOD, l.ID.String(), DecisionRequest{Action: ActionReject, Comment: "busy sprint"})

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Equal(t, audit.ActionLeaveRejected, deps.auditor.calls[0].action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unauthorized approver", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, false)
		deps.repo.updateFn = func(ctx context.Context, l *LeaveRequest) error {
			t.Fatal("update must not be called")
			return nil
		}

		_, err := deps.service.Decide(ctx, deps.org.opsManager, l.ID.String(), DecisionRequest{Action: ActionApprove})

		assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorizedToApprove)
		assert.Equal(t, http.StatusForbidden, apperror.ToHTTP(err).Status)
		assert.Empty(t, deps.notifier.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing escalation target", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		deps.dir.hrHOD = nil
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Decide(ctx, deps.org.engHOD, l.ID.String(), DecisionRequest{Action: ActionApprove})

		assert.ErrorIs(t, err, approvalerrors.ErrNoApproverFound)
		assert.Equal(t, StatusPending, l.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Decide(ctx, deps.org.engHOD, uuid.NewString(), DecisionRequest{Action: ActionApprove})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid action and id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Decide(ctx, deps.org.engHOD, uuid.NewString(), DecisionRequest{Action: "skip"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction)

		_, err = deps.service.Decide(ctx, deps.org.engHOD, "not-a-uuid", DecisionRequest{Action: ActionApprove})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_UpdateCancelDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update excludes itself from the overlap check", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, true)
		deps.repo.overlapFn = func(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
			require.NotNil(t, excludeID)
			assert.Equal(t, l.ID, *excludeID)
			return false, nil
		}
		reason := "moved trip"

		resp, err := deps.service.Update(ctx, deps.org.engStaff, l.ID.String(), UpdateLeaveRequest{Reason: &reason})

		require.NoError(t, err)
		assert.Equal(t, "moved trip", resp.Reason)
		assert.Len(t, deps.notifier.sent, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update into an overlap", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, false)
		deps.repo.overlapFn = func(ctx context.Context, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		}
		end := "2025-03-14"

		_, err := deps.service.Update(ctx, deps.org.engStaff, l.ID.String(), UpdateLeaveRequest{EndDate: &end})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Cancel(ctx, deps.org.engStaff, l.ID.String(), CancelLeaveRequest{Reason: "not needed"})

		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, resp.Status)
		assert.Equal(t, "not needed", resp.CancellationReason)
		assert.Equal(t, audit.ActionLeaveCancelled, deps.auditor.calls[0].action)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel by another user", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Cancel(ctx, deps.org.engManager, l.ID.String(), CancelLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrCancelForbidden)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete audits the removed request after commit", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, true)
		deps.repo.deleteFn = func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, l.ID, id)
			assert.Empty(t, deps.auditor.calls)
			return nil
		}

		err := deps.service.Delete(ctx, deps.org.engStaff, l.ID.String())

		assert.NoError(t, err)
		require.Len(t, deps.auditor.calls, 1)
		assert.Equal(t, audit.ActionLeaveDeleted, deps.auditor.calls[0].action)
		assert.Equal(t, l.ID, deps.auditor.calls[0].requestID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("failed delete leaves no audit entry", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		expectTx(t, deps.sqlMock, false)
		deps.repo.deleteFn = func(ctx context.Context, id uuid.UUID) error {
			return errors.New("connection reset")
		}

		err := deps.service.Delete(ctx, deps.org.engStaff, l.ID.String())

		assert.Error(t, err)
		assert.Empty(t, deps.auditor.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete commit failure leaves no audit entry", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		err := deps.service.Delete(ctx, deps.org.engStaff, l.ID.String())

		assert.Error(t, err)
		assert.Empty(t, deps.auditor.calls)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id visibility", func(t *testing.T) {
		deps := setupServiceTest(t)
		l := storedRequest(t, deps)
		o := deps.org

		_, err := deps.service.GetByID(ctx, o.engStaff, l.ID.String())
		assert.NoError(t, err)
		_, err = deps.service.GetByID(ctx, o.engHOD, l.ID.String())
		assert.NoError(t, err)
		_, err = deps.service.GetByID(ctx, o.hrHOD, l.ID.String())
		assert.NoError(t, err)
		_, err = deps.service.GetByID(ctx, o.engManager, l.ID.String())
		assert.NoError(t, err)

		_, err = deps.service.GetByID(ctx, o.opsStaff, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorizedToView)
		_, err = deps.service.GetByID(ctx, o.opsManager, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorizedToView)
	})

	t.Run("list uses the role scope", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := deps.org
		var got Scope
		deps.repo.listFn = func(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error) {
			got = scope
			assert.Equal(t, StatusPending, filter.Status)
			return []LeaveRequest{*newDraft(o.engStaff)}, nil
		}

		resp, err := deps.service.List(ctx, o.engManager, ListFilter{Status: StatusPending})

		require.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, engDept.ID, *got.DepartmentID)
		assert.Equal(t, o.engManager.ID, *got.EmployeeID)

		_, err = deps.service.ListMine(ctx, o.engHOD, ListFilter{Status: StatusPending})
		require.NoError(t, err)
		assert.False(t, got.All)
		assert.Nil(t, got.DepartmentID)
		assert.Equal(t, o.engHOD.ID, *got.EmployeeID)
	})

	t.Run("department view", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := deps.org
		var got Scope
		deps.repo.listFn = func(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error) {
			got = scope
			return nil, nil
		}

		_, err := deps.service.ListDepartment(ctx, o.engManager, ListFilter{})
		assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorizedToView)

		_, err = deps.service.ListDepartment(ctx, o.engHOD, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, engDept.ID, *got.DepartmentID)
		assert.Nil(t, got.EmployeeID)

		_, err = deps.service.ListDepartment(ctx, o.hrHOD, ListFilter{})
		require.NoError(t, err)
		assert.True(t, got.All)
	})

	t.Run("pending approvals", func(t *testing.T) {
		deps := setupServiceTest(t)
		o := deps.org
		deps.repo.pendingFn = func(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error) {
			assert.Equal(t, o.engHOD.ID, approverID)
			return []LeaveRequest{*newDraft(o.engStaff), *newDraft(o.engManager)}, nil
		}

		resp, err := deps.service.ListPendingApprovals(ctx, o.engHOD)

		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("stats", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.countByStatusFn = func(ctx context.Context, scope Scope) (map[string]int64, error) {
			assert.True(t, scope.All)
			return map[string]int64{StatusPending: 2, StatusApproved: 5, StatusRejected: 1}, nil
		}

		resp, err := deps.service.Stats(ctx, deps.org.superAdmin)

		require.NoError(t, err)
		assert.Equal(t, StatsResponse{Total: 8, Pending: 2, Approved: 5, Rejected: 1}, resp)
	})

	t.Run("available types", func(t *testing.T) {
		deps := setupServiceTest(t)
		types := deps.service.AvailableTypes()

		assert.Len(t, types, 7)
		assert.Equal(t, LeaveTypeResponse{Value: TypeAnnual, Label: "Annual Leave"}, types[0])
	})
}
