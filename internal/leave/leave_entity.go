package leave

import (
	"time"

	"go-elra/internal/directory"

	"github.com/google/uuid"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

const (
	TypeAnnual      = "Annual"
	TypeSick        = "Sick"
	TypePersonal    = "Personal"
	TypeMaternity   = "Maternity"
	TypePaternity   = "Paternity"
	TypeStudy       = "Study"
	TypeBereavement = "Bereavement"
)

var leaveTypes = []string{
	TypeAnnual,
	TypeSick,
	TypePersonal,
	TypeMaternity,
	TypePaternity,
	TypeStudy,
	TypeBereavement,
}

func IsValidLeaveType(t string) bool {
	for _, v := range leaveTypes {
		if v == t {
			return true
		}
	}
	return false
}

type LeaveRequest struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID             `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	Employee     *directory.User       `gorm:"foreignKey:EmployeeID"`
	DepartmentID uuid.UUID             `gorm:"type:uuid;not null;index:idx_leave_requests_department_status"`
	Department   *directory.Department `gorm:"foreignKey:DepartmentID"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Days      int       `gorm:"not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status             string          `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_department_status"`
	CurrentApproverID  *uuid.UUID      `gorm:"type:uuid;index"`
	CurrentApprover    *directory.User `gorm:"foreignKey:CurrentApproverID"`
	ApprovalLevel      int             `gorm:"not null;default:1"`
	ApprovalChain      []string        `gorm:"type:jsonb;serializer:json"`
	TotalApprovalSteps int             `gorm:"not null;default:1"`
	Approvals          []LeaveApproval `gorm:"foreignKey:LeaveRequestID;constraint:OnDelete:CASCADE"`

	ApprovedAt         *time.Time
	RejectedAt         *time.Time
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancellationReason string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveApproval is one approver's entry in a request's approval log.
type LeaveApproval struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_leave_approvals_request_approver"`
	ApproverID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_leave_approvals_request_approver"`
	Approver       *directory.User `gorm:"foreignKey:ApproverID"`
	Role           string          `gorm:"type:varchar(40);not null"`
	Status         string          `gorm:"type:varchar(20);not null"`
	Comment        string          `gorm:"type:text"`
	ApprovedAt     *time.Time
	Position       int `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l *LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}

func (l *LeaveRequest) IsCurrentApprover(userID uuid.UUID) bool {
	return l.CurrentApproverID != nil && *l.CurrentApproverID == userID
}

func (l *LeaveRequest) RequesterName() string {
	if l.Employee == nil {
		return "An employee"
	}
	return l.Employee.FullName()
}
