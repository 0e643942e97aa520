package leave

import (
	"fmt"
	"time"

	"go-elra/internal/approval"
	approvalerrors "go-elra/internal/approval/errors"
	"go-elra/internal/audit"
	"go-elra/internal/directory"
	leaveerrors "go-elra/internal/leave/errors"
	"go-elra/internal/notification"

	"github.com/google/uuid"
)

// parties are the oversight users a transition may notify. Either may be nil.
type parties struct {
	superAdmin *directory.User
	hrHOD      *directory.User
}

type period struct {
	leaveType string
	start     time.Time
	end       time.Time
	days      int
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validatePeriod enforces start < end and start >= today. When days is nil it
// is the number of whole days between start and end.
func validatePeriod(leaveType string, start, end time.Time, days *int, today time.Time) (period, error) {
	if !IsValidLeaveType(leaveType) {
		return period{}, leaveerrors.ErrInvalidLeaveType
	}
	if !start.Before(end) {
		return period{}, leaveerrors.ErrInvalidDateRange
	}
	if start.Before(truncateDay(today)) {
		return period{}, leaveerrors.ErrStartDateInPast
	}

	span := int(end.Sub(start).Hours() / 24)
	p := period{leaveType: leaveType, start: start, end: end, days: span}
	if days != nil {
		if *days < 1 || *days > span+1 {
			return period{}, leaveerrors.ErrInvalidDays
		}
		p.days = *days
	}
	return p, nil
}

func leaveData(l *LeaveRequest) map[string]any {
	return map[string]any{
		"leave_request_id": l.ID.String(),
		"leave_type":       l.LeaveType,
		"start_date":       l.StartDate.Format(dateLayout),
		"end_date":         l.EndDate.Format(dateLayout),
		"days":             l.Days,
		"status":           l.Status,
	}
}

func periodText(l *LeaveRequest) string {
	return fmt.Sprintf("%s leave from %s to %s (%d days)",
		l.LeaveType, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.Days)
}

func notify(to *directory.User, typ, title, message string, data map[string]any) NotifyEffect {
	return NotifyEffect{RecipientID: to.ID, Type: typ, Title: title, Message: message, Data: data}
}

func auditEntry(actor *directory.User, action string, l *LeaveRequest, details map[string]any) AuditEffect {
	return AuditEffect{UserID: actor.ID, Action: action, RequestID: l.ID, Details: details}
}

// oversight notifies the Super Admin unless they are the one acting.
func oversight(p parties, actorID uuid.UUID, title, message string, data map[string]any) []Effect {
	if p.superAdmin == nil || p.superAdmin.ID == actorID {
		return nil
	}
	return []Effect{notify(p.superAdmin, notification.TypeLeaveOversight, title, message, data)}
}

func validateRequester(requester *directory.User) error {
	if requester.RoleLevel() <= directory.LevelViewer {
		return leaveerrors.ErrViewerCannotRequest
	}
	return nil
}

// planCreate fills in the workflow fields of a new request.
func planCreate(l *LeaveRequest, requester *directory.User, route approval.Route, p parties, now time.Time) []Effect {
	log := NewApprovalLog(nil)
	l.EmployeeID = requester.ID
	l.Employee = requester
	l.DepartmentID = requester.DepartmentID
	l.Department = requester.Department
	l.ApprovalChain = route.Chain
	l.TotalApprovalSteps = len(route.Chain)

	if route.AutoApproved() {
		l.Status = StatusApproved
		l.ApprovalLevel = 3
		l.ApprovedAt = &now
		l.CurrentApproverID = nil
		log.Record(LeaveApproval{
			LeaveRequestID: l.ID,
			ApproverID:     requester.ID,
			Role:           approval.LabelSuperAdmin,
			Status:         StatusApproved,
			Comment:        "Auto-approved (Super Admin request)",
			ApprovedAt:     &now,
		})
		l.Approvals = log.Entries()

		data := leaveData(l)
		var effects []Effect
		if p.hrHOD != nil && p.hrHOD.ID != requester.ID {
			effects = append(effects, notify(p.hrHOD, notification.TypeLeaveOversight,
				"Super Admin leave recorded",
				fmt.Sprintf("%s has taken %s. No approval is required.", l.RequesterName(), periodText(l)),
				data))
		}
		effects = append(effects,
			notify(requester, notification.TypeLeaveApproved,
				"Leave request auto-approved",
				fmt.Sprintf("Your %s has been approved automatically.", periodText(l)),
				data),
			auditEntry(requester, audit.ActionLeaveCreated, l, map[string]any{
				"leave_type":     l.LeaveType,
				"start_date":     l.StartDate.Format(dateLayout),
				"end_date":       l.EndDate.Format(dateLayout),
				"days":           l.Days,
				"auto_approved":  true,
				"approval_chain": l.ApprovalChain,
			}),
		)
		return effects
	}

	approver := route.Approver
	approverID := approver.ID
	l.Status = StatusPending
	l.ApprovalLevel = 2
	l.CurrentApproverID = &approverID
	l.CurrentApprover = approver
	log.Record(LeaveApproval{
		LeaveRequestID: l.ID,
		ApproverID:     approver.ID,
		Role:           route.Label,
		Status:         StatusPending,
	})
	l.Approvals = log.Entries()

	data := leaveData(l)
	data["approval_chain"] = l.ApprovalChain
	effects := []Effect{
		notify(approver, notification.TypeLeaveRequest,
			"Leave request awaiting your approval",
			fmt.Sprintf("%s requested %s. Your approval is required.", l.RequesterName(), periodText(l)),
			data),
		notify(requester, notification.TypeLeaveSubmitted,
			"Leave request submitted",
			fmt.Sprintf("Your %s was submitted and is awaiting %s. Approval path: %v.",
				periodText(l), approver.FullName(), l.ApprovalChain),
			data),
	}
	if p.superAdmin == nil || p.superAdmin.ID != approver.ID {
		effects = append(effects, oversight(p, requester.ID,
			"New leave request",
			fmt.Sprintf("%s (%s) requested %s.", l.RequesterName(), requester.DepartmentName(), periodText(l)),
			data)...)
	}
	effects = append(effects, auditEntry(requester, audit.ActionLeaveCreated, l, map[string]any{
		"leave_type":       l.LeaveType,
		"start_date":       l.StartDate.Format(dateLayout),
		"end_date":         l.EndDate.Format(dateLayout),
		"days":             l.Days,
		"approval_chain":   l.ApprovalChain,
		"current_approver": approverID.String(),
	}))
	return effects
}

// checkDecision verifies that the request is open and the actor may decide it.
func checkDecision(l *LeaveRequest, actor *directory.User) error {
	if !l.IsPending() {
		return leaveerrors.ErrNotPending
	}
	// Nobody decides their own request, override or not.
	if l.EmployeeID == actor.ID {
		return leaveerrors.ErrNotAuthorizedToApprove
	}
	target := approval.Target{
		DepartmentID:      l.DepartmentID,
		ApprovalLevel:     l.ApprovalLevel,
		CurrentApproverID: l.CurrentApproverID,
	}
	if !approval.Authorize(actor, target) {
		return leaveerrors.ErrNotAuthorizedToApprove
	}
	return nil
}

// planDecision applies an approve or reject. escalateTo is required when an
// approval by actor is not final.
func planDecision(l *LeaveRequest, actor *directory.User, action, comment string, escalateTo *directory.User, p parties, now time.Time) ([]Effect, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, leaveerrors.ErrInvalidAction
	}
	if err := checkDecision(l, actor); err != nil {
		return nil, err
	}

	if action == ActionReject {
		return planReject(l, actor, comment, p, now), nil
	}
	if !approval.IsFinalApproval(actor) && escalateTo == nil {
		return nil, approvalerrors.ErrNoApproverFound
	}
	return planApprove(l, actor, comment, escalateTo, p, now), nil
}

func planApprove(l *LeaveRequest, actor *directory.User, comment string, escalateTo *directory.User, p parties, now time.Time) []Effect {
	log := NewApprovalLog(l.Approvals)
	log.Record(LeaveApproval{
		LeaveRequestID: l.ID,
		ApproverID:     actor.ID,
		Role:           approval.LabelFor(actor),
		Status:         StatusApproved,
		Comment:        comment,
		ApprovedAt:     &now,
	})

	requester := &directory.User{ID: l.EmployeeID}

	if approval.IsFinalApproval(actor) {
		l.Status = StatusApproved
		l.ApprovedAt = &now
		l.CurrentApproverID = nil
		l.CurrentApprover = nil
		l.Approvals = log.Entries()

		data := leaveData(l)
		effects := []Effect{
			notify(requester, notification.TypeLeaveApproved,
				"Leave request approved",
				fmt.Sprintf("Your %s has been fully approved by %s.", periodText(l), actor.FullName()),
				data),
		}
		effects = append(effects, oversight(p, actor.ID,
			"Leave request approved",
			fmt.Sprintf("%s's %s was approved by %s.", l.RequesterName(), periodText(l), actor.FullName()),
			data)...)
		effects = append(effects, auditEntry(actor, audit.ActionLeaveApproved, l, map[string]any{
			"final":          true,
			"approval_level": l.ApprovalLevel,
			"comment":        comment,
		}))
		return effects
	}

	nextID := escalateTo.ID
	l.CurrentApproverID = &nextID
	l.CurrentApprover = escalateTo
	l.ApprovalLevel++
	log.Record(LeaveApproval{
		LeaveRequestID: l.ID,
		ApproverID:     escalateTo.ID,
		Role:           approval.LabelFor(escalateTo),
		Status:         StatusPending,
	})
	l.Approvals = log.Entries()

	data := leaveData(l)
	data["approved_by"] = actor.ID.String()
	return []Effect{
		notify(escalateTo, notification.TypeLeaveEscalated,
			"Leave request awaiting final approval",
			fmt.Sprintf("%s's %s was approved by %s and needs your final approval.",
				l.RequesterName(), periodText(l), actor.FullName()),
			data),
		notify(requester, notification.TypeLeaveEscalated,
			"Leave request progressing",
			fmt.Sprintf("Your %s was approved by %s and is now awaiting final approval from %s.",
				periodText(l), actor.FullName(), escalateTo.FullName()),
			data),
		auditEntry(actor, audit.ActionLeaveApproved, l, map[string]any{
			"escalated":      true,
			"next_approver":  nextID.String(),
			"approval_level": l.ApprovalLevel,
			"comment":        comment,
		}),
	}
}

func planReject(l *LeaveRequest, actor *directory.User, comment string, p parties, now time.Time) []Effect {
	log := NewApprovalLog(l.Approvals)

	// Department HOD who already signed off, if any.
	var deptApprover *uuid.UUID
	for _, e := range log.Entries() {
		if e.Role == approval.LabelDepartmentHOD && e.Status == StatusApproved && e.ApproverID != actor.ID {
			id := e.ApproverID
			deptApprover = &id
			break
		}
	}

	log.Record(LeaveApproval{
		LeaveRequestID: l.ID,
		ApproverID:     actor.ID,
		Role:           approval.LabelFor(actor),
		Status:         StatusRejected,
		Comment:        comment,
		ApprovedAt:     &now,
	})
	l.Status = StatusRejected
	l.RejectedAt = &now
	l.CurrentApproverID = nil
	l.CurrentApprover = nil
	l.Approvals = log.Entries()

	var message string
	switch {
	case actor.IsHRHOD():
		message = fmt.Sprintf("Your %s was rejected at the final HR review by %s.", periodText(l), actor.FullName())
	case actor.RoleLevel() == directory.LevelHOD:
		message = fmt.Sprintf("Your %s was rejected by your Department HOD, %s.", periodText(l), actor.FullName())
	default:
		message = fmt.Sprintf("Your %s was rejected by %s.", periodText(l), actor.FullName())
	}
	if comment != "" {
		message += " Comment: " + comment
	}

	data := leaveData(l)
	data["rejected_by"] = actor.ID.String()
	effects := []Effect{
		notify(&directory.User{ID: l.EmployeeID}, notification.TypeLeaveRejected, "Leave request rejected", message, data),
	}
	if actor.IsHRHOD() && deptApprover != nil {
		effects = append(effects, notify(&directory.User{ID: *deptApprover}, notification.TypeLeaveRejected,
			"Leave request rejected by HR",
			fmt.Sprintf("%s's %s, which you approved, was rejected by HR.", l.RequesterName(), periodText(l)),
			data))
	}
	effects = append(effects, oversight(p, actor.ID,
		"Leave request rejected",
		fmt.Sprintf("%s's %s was rejected by %s.", l.RequesterName(), periodText(l), actor.FullName()),
		data)...)
	effects = append(effects, auditEntry(actor, audit.ActionLeaveRejected, l, map[string]any{
		"approval_level": l.ApprovalLevel,
		"rejected_by":    approval.LabelFor(actor),
		"comment":        comment,
	}))
	return effects
}

func checkOwnerPending(l *LeaveRequest, caller *directory.User) error {
	if l.EmployeeID != caller.ID {
		return leaveerrors.ErrNotRequestOwner
	}
	if !l.IsPending() {
		return leaveerrors.ErrNotPending
	}
	return nil
}

// planUpdate patches the editable fields. The approval route is not re-resolved.
func planUpdate(l *LeaveRequest, caller *directory.User, req UpdateLeaveRequest, today time.Time) ([]Effect, error) {
	if err := checkOwnerPending(l, caller); err != nil {
		return nil, err
	}

	leaveType, start, end := l.LeaveType, l.StartDate, l.EndDate
	var err error
	if req.LeaveType != nil {
		leaveType = *req.LeaveType
	}
	if req.StartDate != nil {
		if start, err = parseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if end, err = parseDate(*req.EndDate); err != nil {
			return nil, err
		}
	}

	days := req.Days
	if days == nil && req.StartDate == nil && req.EndDate == nil {
		days = &l.Days
	}
	p, err := validatePeriod(leaveType, start, end, days, today)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	if p.leaveType != l.LeaveType {
		changed = append(changed, "leave_type")
	}
	if !p.start.Equal(l.StartDate) {
		changed = append(changed, "start_date")
	}
	if !p.end.Equal(l.EndDate) {
		changed = append(changed, "end_date")
	}
	if p.days != l.Days {
		changed = append(changed, "days")
	}
	if req.Reason != nil && *req.Reason != l.Reason {
		changed = append(changed, "reason")
		l.Reason = *req.Reason
	}
	l.LeaveType, l.StartDate, l.EndDate, l.Days = p.leaveType, p.start, p.end, p.days

	effects := []Effect{}
	if l.CurrentApproverID != nil && len(changed) > 0 {
		effects = append(effects, NotifyEffect{
			RecipientID: *l.CurrentApproverID,
			Type:        notification.TypeLeaveRequest,
			Title:       "Leave request updated",
			Message:     fmt.Sprintf("%s updated their request: %s.", l.RequesterName(), periodText(l)),
			Data:        leaveData(l),
		})
	}
	effects = append(effects, auditEntry(caller, audit.ActionLeaveUpdated, l, map[string]any{
		"changed_fields": changed,
	}))
	return effects, nil
}

// planCancel is open to the creator and to the Super Admin.
func planCancel(l *LeaveRequest, caller *directory.User, reason string, now time.Time) ([]Effect, error) {
	if l.EmployeeID != caller.ID && caller.RoleLevel() < directory.LevelSuperAdmin {
		return nil, leaveerrors.ErrCancelForbidden
	}
	if !l.IsPending() {
		return nil, leaveerrors.ErrNotPending
	}

	prior := l.CurrentApproverID
	callerID := caller.ID
	l.Status = StatusCancelled
	l.CancelledAt = &now
	l.CancelledBy = &callerID
	l.CancellationReason = reason
	l.CurrentApproverID = nil
	l.CurrentApprover = nil

	data := leaveData(l)
	var effects []Effect
	if prior != nil && *prior != caller.ID {
		effects = append(effects, NotifyEffect{
			RecipientID: *prior,
			Type:        notification.TypeLeaveCancelled,
			Title:       "Leave request cancelled",
			Message:     fmt.Sprintf("%s's %s was cancelled and no longer needs your approval.", l.RequesterName(), periodText(l)),
			Data:        data,
		})
	}
	if l.EmployeeID != caller.ID {
		effects = append(effects, NotifyEffect{
			RecipientID: l.EmployeeID,
			Type:        notification.TypeLeaveCancelled,
			Title:       "Leave request cancelled",
			Message:     fmt.Sprintf("Your %s was cancelled by %s.", periodText(l), caller.FullName()),
			Data:        data,
		})
	}
	effects = append(effects, auditEntry(caller, audit.ActionLeaveCancelled, l, map[string]any{
		"reason": reason,
	}))
	return effects, nil
}

func planDelete(l *LeaveRequest, caller *directory.User) ([]Effect, error) {
	if err := checkOwnerPending(l, caller); err != nil {
		return nil, err
	}
	return []Effect{
		auditEntry(caller, audit.ActionLeaveDeleted, l, map[string]any{
			"leave_type": l.LeaveType,
			"start_date": l.StartDate.Format(dateLayout),
			"end_date":   l.EndDate.Format(dateLayout),
			"days":       l.Days,
		}),
	}, nil
}
