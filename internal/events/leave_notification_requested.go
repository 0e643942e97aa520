package events

import "time"

const LeaveNotificationRequestedTopic = "elra.leave.notification.v1"

const LeaveNotificationRequestedType = "leave_notification_requested"

type LeaveNotificationRequestedEvent struct {
	EventType      string         `json:"event_type"`
	RequestID      string         `json:"request_id,omitempty"`
	NotificationID string         `json:"notification_id"`
	RecipientID    string         `json:"recipient_id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}
