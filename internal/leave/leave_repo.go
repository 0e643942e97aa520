package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasOverlappingRequest(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error)
	FindPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, scope Scope) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the service transaction when one is attached.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{SkipDefaultTransaction: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Employee").
		Preload("Department").
		Preload("CurrentApprover").
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("leave_approvals.position ASC")
		}).
		Preload("Approvals.Approver")
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	db := r.conn(ctx)
	if err := db.Omit(clause.Associations).Create(l).Error; err != nil {
		return err
	}
	return r.saveApprovals(db, l)
}

// FindByID locks the row when called inside a transaction.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	db := r.withRelations(r.conn(ctx))
	if r.tx != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "leave_requests"}})
	}

	var l LeaveRequest
	if err := db.First(&l, "leave_requests.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	db := r.conn(ctx)
	if err := db.Omit(clause.Associations).Save(l).Error; err != nil {
		return err
	}
	return r.saveApprovals(db, l)
}

// saveApprovals upserts the log on (leave_request_id, approver_id).
func (r *repository) saveApprovals(db *gorm.DB, l *LeaveRequest) error {
	if len(l.Approvals) == 0 {
		return nil
	}
	for i := range l.Approvals {
		l.Approvals[i].LeaveRequestID = l.ID
	}
	return db.
		Omit("Approver").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "leave_request_id"}, {Name: "approver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "status", "comment", "approved_at", "position", "updated_at"}),
		}).
		Create(&l.Approvals).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Where("leave_request_id = ?", id).Delete(&LeaveApproval{}).Error; err != nil {
		return err
	}
	res := db.Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOverlappingRequest(ctx context.Context, employeeID uuid.UUID, startDate, endDate time.Time, excludeID *uuid.UUID) (bool, error) {
	db := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func applyScope(db *gorm.DB, scope Scope) *gorm.DB {
	switch {
	case scope.All:
		return db
	case scope.DepartmentID != nil && scope.EmployeeID != nil:
		return db.Where("(leave_requests.department_id = ? OR leave_requests.employee_id = ?)", *scope.DepartmentID, *scope.EmployeeID)
	case scope.DepartmentID != nil:
		return db.Where("leave_requests.department_id = ?", *scope.DepartmentID)
	case scope.EmployeeID != nil:
		return db.Where("leave_requests.employee_id = ?", *scope.EmployeeID)
	default:
		return db.Where("1 = 0")
	}
}

func (r *repository) List(ctx context.Context, scope Scope, filter ListFilter) ([]LeaveRequest, error) {
	db := applyScope(r.withRelations(r.conn(ctx)).Model(&LeaveRequest{}), scope)
	if filter.Status != "" {
		db = db.Where("leave_requests.status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		db = db.Where("leave_requests.leave_type = ?", filter.LeaveType)
	}

	var items []LeaveRequest
	err := db.Order("leave_requests.created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) FindPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]LeaveRequest, error) {
	var items []LeaveRequest
	err := r.withRelations(r.conn(ctx)).
		Where("current_approver_id = ?", approverID).
		Where("status = ?", StatusPending).
		Order("start_date ASC").
		Find(&items).Error
	return items, err
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *repository) CountByStatus(ctx context.Context, scope Scope) (map[string]int64, error) {
	var rows []statusCount
	err := applyScope(r.conn(ctx).Model(&LeaveRequest{}), scope).
		Select("leave_requests.status AS status, COUNT(*) AS count").
		Group("leave_requests.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
