package leave

import (
	"context"
	"database/sql"
	"time"

	"go-elra/internal/approval"
	"go-elra/internal/directory"
	leaveerrors "go-elra/internal/leave/errors"
	"go-elra/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, actor *directory.User, req CreateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actor *directory.User, id string, req DecisionRequest) (LeaveResponse, error)
	Update(ctx context.Context, actor *directory.User, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actor *directory.User, id string, req CancelLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actor *directory.User, id string) error
	GetByID(ctx context.Context, actor *directory.User, id string) (LeaveResponse, error)
	List(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error)
	ListMine(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error)
	ListDepartment(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error)
	ListPendingApprovals(ctx context.Context, actor *directory.User) ([]LeaveResponse, error)
	Stats(ctx context.Context, actor *directory.User) (StatsResponse, error)
	AvailableTypes() []LeaveTypeResponse
}

type service struct {
	db         *sql.DB
	repo       Repository
	dir        directory.Directory
	dispatcher *Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, dir directory.Directory, dispatcher *Dispatcher, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, dir, dispatcher, func() time.Time { return time.Now().UTC() }, logger...)
}

func NewServiceWithClock(
	db *sql.DB,
	repo Repository,
	dir directory.Directory,
	dispatcher *Dispatcher,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if dispatcher == nil {
		dispatcher = NewDispatcher(nil, nil, l)
	}
	return &service{db: db, repo: repo, dir: dir, dispatcher: dispatcher, now: now, logger: l}
}

// parties looks up the oversight users. A failed lookup only drops the
// corresponding notification.
func (s *service) parties(ctx context.Context) parties {
	var p parties
	var err error
	if p.superAdmin, err = s.dir.FindSuperAdmin(ctx); err != nil {
		s.logger.Warn("super admin lookup failed", zap.Error(err))
	}
	if p.hrHOD, err = s.dir.FindHRHOD(ctx); err != nil {
		s.logger.Warn("hr hod lookup failed", zap.Error(err))
	}
	return p
}

func parseLeaveID(id string) (uuid.UUID, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidLeaveID
	}
	return leaveID, nil
}

func (s *service) Create(ctx context.Context, actor *directory.User, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actor.ID.String()),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if err := validateRequester(actor); err != nil {
		return LeaveResponse{}, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	now := s.now()
	p, err := validatePeriod(req.LeaveType, start, end, req.Days, now)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	route, err := approval.ResolveRoute(ctx, s.dir, actor)
	if err != nil {
		s.logger.Warn("create leave route resolution failed",
			zap.String("request_id", rid),
			zap.Int("role_level", actor.RoleLevel()),
			zap.String("department", actor.DepartmentName()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	overlap, err := qtx.HasOverlappingRequest(ctx, actor.ID, p.start, p.end, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", actor.ID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		LeaveType: p.leaveType,
		StartDate: p.start,
		EndDate:   p.end,
		Days:      p.days,
		Reason:    req.Reason,
		CreatedAt: now,
		UpdatedAt: now,
	}
	effects := planCreate(l, actor, route, s.parties(ctx), now)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.dispatcher.Dispatch(ctx, effects)
	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("status", l.Status),
		zap.Strings("approval_chain", l.ApprovalChain),
	)
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, actor *directory.User, id string, req DecisionRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("leave decision requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID.String()),
		zap.String("action", req.Action),
	)

	if req.Action != ActionApprove && req.Action != ActionReject {
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave decision begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := checkDecision(l, actor); err != nil {
		s.logger.Warn("leave decision rejected",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.ID.String()),
			zap.String("status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	var next *directory.User
	if req.Action == ActionApprove && !approval.IsFinalApproval(actor) {
		next, err = approval.ResolveEscalation(ctx, s.dir, l.EmployeeID)
		if err != nil {
			s.logger.Warn("leave escalation target not found", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	effects, err := planDecision(l, actor, req.Action, req.Comment, next, s.parties(ctx), s.now())
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave decision persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("leave decision commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.dispatcher.Dispatch(ctx, effects)
	s.logger.Info("leave decision success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("action", req.Action),
		zap.String("status", l.Status),
		zap.Int("approval_level", l.ApprovalLevel),
	)
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, actor *directory.User, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested", zap.String("leave_id", id), zap.String("actor_id", actor.ID.String()))

	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	now := s.now()
	effects, err := planUpdate(l, actor, req, now)
	if err != nil {
		s.logger.Warn("update leave rejected", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	overlap, err := qtx.HasOverlappingRequest(ctx, l.EmployeeID, l.StartDate, l.EndDate, &l.ID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l.UpdatedAt = now
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.dispatcher.Dispatch(ctx, effects)
	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actor *directory.User, id string, req CancelLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested", zap.String("leave_id", id), zap.String("actor_id", actor.ID.String()))

	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	effects, err := planCancel(l, actor, req.Reason, s.now())
	if err != nil {
		s.logger.Warn("cancel leave rejected", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.dispatcher.Dispatch(ctx, effects)
	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

// Delete captures the audit details from the row before it is removed and
// writes them once the removal is committed.
func (s *service) Delete(ctx context.Context, actor *directory.User, id string) error {
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return mapRepositoryError(err)
	}

	effects, err := planDelete(l, actor)
	if err != nil {
		s.logger.Warn("delete leave rejected", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	if err := qtx.Delete(ctx, leaveID); err != nil {
		s.logger.Error("delete leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	s.dispatcher.Dispatch(ctx, effects)
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

// GetByID is visible to the owner, anyone in the approval log, and roles whose scope covers the request.
func (s *service) GetByID(ctx context.Context, actor *directory.User, id string) (LeaveResponse, error) {
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	_, inLog := NewApprovalLog(l.Approvals).Get(actor.ID)
	if l.EmployeeID != actor.ID && !inLog && !l.IsCurrentApprover(actor.ID) && !ScopeFor(actor).Covers(l) {
		return LeaveResponse{}, leaveerrors.ErrNotAuthorizedToView
	}
	return mapToResponse(*l), nil
}

func (s *service) list(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveResponse, error) {
	items, err := s.repo.List(ctx, scope, filter)
	if err != nil {
		s.logger.Error("list leave failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) List(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error) {
	return s.list(ctx, ScopeFor(actor), filter)
}

func (s *service) ListMine(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error) {
	return s.list(ctx, OwnScope(actor.ID), filter)
}

// ListDepartment is the HOD view: own department, or the whole company for HR HOD and Super Admin.
func (s *service) ListDepartment(ctx context.Context, actor *directory.User, filter ListFilter) ([]LeaveResponse, error) {
	if actor.RoleLevel() < directory.LevelHOD {
		return nil, leaveerrors.ErrNotAuthorizedToView
	}
	scope := ScopeFor(actor)
	scope.EmployeeID = nil
	return s.list(ctx, scope, filter)
}

func (s *service) ListPendingApprovals(ctx context.Context, actor *directory.User) ([]LeaveResponse, error) {
	items, err := s.repo.FindPendingForApprover(ctx, actor.ID)
	if err != nil {
		s.logger.Error("list pending approvals failed", zap.String("approver_id", actor.ID.String()), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) Stats(ctx context.Context, actor *directory.User) (StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx, ScopeFor(actor))
	if err != nil {
		return StatsResponse{}, err
	}

	resp := StatsResponse{
		Pending:   counts[StatusPending],
		Approved:  counts[StatusApproved],
		Rejected:  counts[StatusRejected],
		Cancelled: counts[StatusCancelled],
	}
	for _, c := range counts {
		resp.Total += c
	}
	return resp, nil
}

func (s *service) AvailableTypes() []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(leaveTypes))
	for i, t := range leaveTypes {
		resp[i] = LeaveTypeResponse{Value: t, Label: t + " Leave"}
	}
	return resp
}
