package leave

import (
	"github.com/google/uuid"
)

// ApprovalLog holds at most one entry per approver, in first-recorded order.
type ApprovalLog struct {
	order   []uuid.UUID
	entries map[uuid.UUID]LeaveApproval
}

// NewApprovalLog loads stored entries. A repeated approver keeps its first
// position and takes the later entry's values.
func NewApprovalLog(entries []LeaveApproval) *ApprovalLog {
	log := &ApprovalLog{entries: make(map[uuid.UUID]LeaveApproval, len(entries))}
	for _, e := range entries {
		log.put(e)
	}
	return log
}

func (l *ApprovalLog) put(e LeaveApproval) {
	if _, ok := l.entries[e.ApproverID]; !ok {
		l.order = append(l.order, e.ApproverID)
	}
	l.entries[e.ApproverID] = e
}

// Record adds the approver's entry or overwrites it. A decided entry is only
// overwritten when the new entry carries a comment.
func (l *ApprovalLog) Record(e LeaveApproval) {
	cur, exists := l.entries[e.ApproverID]
	if exists {
		if cur.Status != StatusPending && e.Comment == "" {
			return
		}
		e.ID = cur.ID
		e.CreatedAt = cur.CreatedAt
		if e.LeaveRequestID == uuid.Nil {
			e.LeaveRequestID = cur.LeaveRequestID
		}
	} else if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	l.put(e)
}

func (l *ApprovalLog) Get(approverID uuid.UUID) (LeaveApproval, bool) {
	e, ok := l.entries[approverID]
	return e, ok
}

// Entries returns the log in order with Position renumbered.
func (l *ApprovalLog) Entries() []LeaveApproval {
	out := make([]LeaveApproval, 0, len(l.order))
	for i, id := range l.order {
		e := l.entries[id]
		e.Position = i
		out = append(out, e)
	}
	return out
}

// CleanupApprovals collapses duplicate approver entries, keeping the most recent one.
func CleanupApprovals(entries []LeaveApproval) []LeaveApproval {
	return NewApprovalLog(entries).Entries()
}
