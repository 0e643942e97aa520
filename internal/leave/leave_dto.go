package leave

import "time"

const dateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=Annual Sick Personal Maternity Paternity Study Bereavement"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Days      *int   `json:"days" binding:"omitempty,min=1"`
	Reason    string `json:"reason" binding:"required,max=1000"`
}

// UpdateLeaveRequest patches a pending request; nil fields are left unchanged.
type UpdateLeaveRequest struct {
	LeaveType *string `json:"leave_type" binding:"omitempty,oneof=Annual Sick Personal Maternity Paternity Study Bereavement"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Days      *int    `json:"days" binding:"omitempty,min=1"`
	Reason    *string `json:"reason" binding:"omitempty,max=1000"`
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type DecisionRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment" binding:"max=1000"`
}

type CancelLeaveRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type ListFilter struct {
	Status    string `form:"status"`
	LeaveType string `form:"leave_type"`
}

type ApprovalResponse struct {
	ApproverID   string  `json:"approver_id"`
	ApproverName string  `json:"approver_name,omitempty"`
	Role         string  `json:"role"`
	Status       string  `json:"status"`
	Comment      string  `json:"comment,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}

type LeaveResponse struct {
	ID                  string             `json:"id"`
	EmployeeID          string             `json:"employee_id"`
	EmployeeName        string             `json:"employee_name,omitempty"`
	DepartmentID        string             `json:"department_id"`
	DepartmentName      string             `json:"department_name,omitempty"`
	LeaveType           string             `json:"leave_type"`
	StartDate           string             `json:"start_date"`
	EndDate             string             `json:"end_date"`
	Days                int                `json:"days"`
	Reason              string             `json:"reason"`
	Status              string             `json:"status"`
	CurrentApproverID   *string            `json:"current_approver_id"`
	CurrentApproverName string             `json:"current_approver_name,omitempty"`
	ApprovalLevel       int                `json:"approval_level"`
	ApprovalChain       []string           `json:"approval_chain"`
	TotalApprovalSteps  int                `json:"total_approval_steps"`
	Approvals           []ApprovalResponse `json:"approvals"`
	ApprovedAt          *string            `json:"approved_at,omitempty"`
	RejectedAt          *string            `json:"rejected_at,omitempty"`
	CancelledAt         *string            `json:"cancelled_at,omitempty"`
	CancelledBy         *string            `json:"cancelled_by,omitempty"`
	CancellationReason  string             `json:"cancellation_reason,omitempty"`
	CreatedAt           string             `json:"created_at"`
	UpdatedAt           string             `json:"updated_at"`
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type LeaveTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                 l.ID.String(),
		EmployeeID:         l.EmployeeID.String(),
		DepartmentID:       l.DepartmentID.String(),
		LeaveType:          l.LeaveType,
		StartDate:          l.StartDate.Format(dateLayout),
		EndDate:            l.EndDate.Format(dateLayout),
		Days:               l.Days,
		Reason:             l.Reason,
		Status:             l.Status,
		ApprovalLevel:      l.ApprovalLevel,
		ApprovalChain:      l.ApprovalChain,
		TotalApprovalSteps: l.TotalApprovalSteps,
		Approvals:          make([]ApprovalResponse, 0, len(l.Approvals)),
		ApprovedAt:         formatTime(l.ApprovedAt),
		RejectedAt:         formatTime(l.RejectedAt),
		CancelledAt:        formatTime(l.CancelledAt),
		CancellationReason: l.CancellationReason,
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName()
	}
	if l.Department != nil {
		resp.DepartmentName = l.Department.Name
	}
	if l.CurrentApproverID != nil {
		v := l.CurrentApproverID.String()
		resp.CurrentApproverID = &v
	}
	if l.CurrentApprover != nil {
		resp.CurrentApproverName = l.CurrentApprover.FullName()
	}
	if l.CancelledBy != nil {
		v := l.CancelledBy.String()
		resp.CancelledBy = &v
	}
	for _, a := range l.Approvals {
		ar := ApprovalResponse{
			ApproverID: a.ApproverID.String(),
			Role:       a.Role,
			Status:     a.Status,
			Comment:    a.Comment,
			ApprovedAt: formatTime(a.ApprovedAt),
		}
		if a.Approver != nil {
			ar.ApproverName = a.Approver.FullName()
		}
		resp.Approvals = append(resp.Approvals, ar)
	}
	return resp
}

func mapToListResponse(items []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(items))
	for i, l := range items {
		resp[i] = mapToResponse(l)
	}
	return resp
}
