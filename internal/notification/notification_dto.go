package notification

import "time"

// Types emitted by the leave workflow.
const (
	TypeLeaveRequest   = "LEAVE_REQUEST"
	TypeLeaveEscalated = "LEAVE_ESCALATED"
	TypeLeaveApproved  = "LEAVE_APPROVED"
	TypeLeaveRejected  = "LEAVE_REJECTED"
	TypeLeaveCancelled = "LEAVE_CANCELLED"
	TypeLeaveSubmitted = "LEAVE_SUBMITTED"
	TypeLeaveOversight = "LEAVE_OVERSIGHT"
)

type CreateNotificationRequest struct {
	RecipientID string         `json:"recipient_id" binding:"required,uuid"`
	Type        string         `json:"type" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Message     string         `json:"message" binding:"required"`
	Data        map[string]any `json:"data"`
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *string        `json:"read_at,omitempty"`
	CreatedAt string         `json:"created_at"`
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(items []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp
}
